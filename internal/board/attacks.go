package board

// Pre-computed attack tables for non-sliding pieces. Built once in init and
// read-only afterwards.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := Empty
		attacks |= (bb << 17) & NotFileA  // NNE
		attacks |= (bb << 15) & NotFileH  // NNW
		attacks |= (bb >> 17) & NotFileH  // SSW
		attacks |= (bb >> 15) & NotFileA  // SSE
		attacks |= (bb << 10) & NotFileAB // ENE
		attacks |= (bb << 6) & NotFileGH  // WNW
		attacks |= (bb >> 10) & NotFileGH // WSW
		attacks |= (bb >> 6) & NotFileAB  // ESE

		knightAttacks[sq] = attacks
	}
}

// initKingAttacks ORs a range-1 slide in every direction over an empty board.
func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		attacks := Empty
		for d := North; d <= NorthWest; d++ {
			attacks |= SlidingAttacks(SquareBB(sq), Empty, d)
		}
		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		pawnAttacks[White][sq] = ShiftOne(bb, NorthWest) | ShiftOne(bb, NorthEast)
		pawnAttacks[Black][sq] = ShiftOne(bb, SouthWest) | ShiftOne(bb, SouthEast)
	}
}

// KnightXray returns the knight reach from a square.
func KnightXray(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingXray returns the king one-step reach from a square (castling excluded).
func KingXray(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttackXray returns the diagonal squares a pawn of color c threatens,
// whether or not they are occupied.
func PawnAttackXray(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// PawnXray returns the full reach of a pawn: the single push, the double push
// from the home rank when both squares are empty, and diagonal captures onto
// occupied squares (of either color; callers mask out their own pieces).
func PawnXray(c Color, occupied Bitboard, sq Square) Bitboard {
	empty := ^occupied
	forward, home := North, 1
	if c == Black {
		forward, home = South, 6
	}

	reach := ShiftOne(SquareBB(sq), forward) & empty
	if sq.Rank() == home {
		reach |= ShiftOne(reach, forward) & empty
	}
	return reach | (pawnAttacks[c][sq] & occupied)
}

// sliderXray returns, for each given direction, the ray from sq up to and
// including the first occupied square. The raw ray is computed over an empty
// board, then the ray cast from the first collision is XORed out.
func sliderXray(occupied Bitboard, sq Square, dirs [4]Direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		ray := SlidingAttacks(SquareBB(sq), Universe, d)
		shielded := SlidingAttacks(ray&occupied, Universe, d)
		attacks |= ray ^ shielded
	}
	return attacks
}

// RookXray returns the rook attacks from sq given the occupancy.
func RookXray(occupied Bitboard, sq Square) Bitboard {
	return sliderXray(occupied, sq, rookDirections)
}

// BishopXray returns the bishop attacks from sq given the occupancy.
func BishopXray(occupied Bitboard, sq Square) Bitboard {
	return sliderXray(occupied, sq, bishopDirections)
}

// QueenXray returns the queen attacks from sq given the occupancy.
func QueenXray(occupied Bitboard, sq Square) Bitboard {
	return RookXray(occupied, sq) | BishopXray(occupied, sq)
}

// rayTowards returns the full empty-board ray leaving from along the
// direction that reaches target, or Empty if the squares are not aligned.
func rayTowards(from, target Square) Bitboard {
	for d := North; d <= NorthWest; d++ {
		ray := SlidingAttacks(SquareBB(from), Universe, d)
		if ray.IsSet(target) {
			return ray
		}
	}
	return Empty
}
