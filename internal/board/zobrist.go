package board

// Zobrist keys identify a position by the same fields as Key: placement,
// side to move, castling rights and en passant file. They are generated from
// a fixed seed so hashes stay stable across runs and can be persisted.
var (
	zobristPiece      [12][64]uint64 // [Piece][Square]
	zobristEnPassant  [8]uint64      // one per file
	zobristCastling   [16]uint64     // one per rights combination
	zobristSideToMove uint64         // XORed in when Black is to move
)

func init() {
	rng := xorshift{state: 0x98F107A2BEEF1234}

	for piece := WhitePawn; piece < NoPiece; piece++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[piece][sq] = rng.next()
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for cr := range zobristCastling {
		zobristCastling[cr] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// xorshift is the xorshift64* generator.
type xorshift struct {
	state uint64
}

func (x *xorshift) next() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 0x2545F4914F6CDD1D
}

// Hash returns the Zobrist hash of the position. Two positions with equal
// Key values hash equally; the move counters do not contribute.
func (p *Position) Hash() uint64 {
	var hash uint64
	occ := p.all
	for occ != 0 {
		sq := occ.PopLSB()
		hash ^= zobristPiece[p.placement[sq]][sq]
	}
	if p.sideToMove == Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[p.castlingRights]
	if p.enPassant != NoSquare {
		hash ^= zobristEnPassant[p.enPassant.File()]
	}
	return hash
}
