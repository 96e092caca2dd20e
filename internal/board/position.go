package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastlingRights     CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastlingRights {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// Position is an immutable chess position. The placement table and the
// piece bitboards describe the same pieces; the occupancy aggregates are
// always the union of the piece bitboards. Positions are never modified once
// returned: every move derives a new Position from a private copy.
type Position struct {
	placement [64]Piece

	// Piece bitboards: [Color][PieceType]
	pieces [2][6]Bitboard

	occupied [2]Bitboard
	all      Bitboard

	sideToMove     Color
	castlingRights CastlingRights
	enPassant      Square // NoSquare if none
	halfMoveClock  int
	fullMoveNumber int
}

// NewPosition creates the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// emptyPosition returns a position with no pieces and default state.
func emptyPosition() *Position {
	p := &Position{
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
	for sq := range p.placement {
		p.placement[sq] = NoPiece
	}
	return p
}

// clone returns a private copy that may be edited before it is published.
func (p *Position) clone() *Position {
	next := *p
	return &next
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.placement[sq]
}

// PieceAtCoord returns the piece on a square given in coordinate form ("e4").
func (p *Position) PieceAtCoord(coord string) (Piece, error) {
	sq, err := ParseSquare(coord)
	if err != nil {
		return NoPiece, err
	}
	return p.placement[sq], nil
}

// ColorAt returns the color of the piece on sq, or NoColor if empty.
func (p *Position) ColorAt(sq Square) Color {
	return p.PieceAt(sq).Color()
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.all&SquareBB(sq) == 0
}

// Pieces returns the bitboard of pieces of the given type and color.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.pieces[c][pt]
}

// Occupied returns all squares holding a piece of color c.
func (p *Position) Occupied(c Color) Bitboard {
	return p.occupied[c]
}

// AllOccupied returns all occupied squares.
func (p *Position) AllOccupied() Bitboard {
	return p.all
}

// KingSquare returns the square of the king of color c, NoSquare if absent.
func (p *Position) KingSquare(c Color) Square {
	return p.pieces[c][King].LSB()
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// CastlingRights returns the castling availability.
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// EnPassant returns the en passant target square, NoSquare if none.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// HalfMoveClock returns the number of plies since the last pawn move or capture.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// FullMoveNumber returns the full move counter, incremented after Black moves.
func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

// putPiece places a piece on an empty square.
func (p *Position) putPiece(piece Piece, sq Square) {
	p.placement[sq] = piece
	p.pieces[piece.Color()][piece.Type()] = p.pieces[piece.Color()][piece.Type()].Set(sq)
}

// removePiece clears sq in both representations and returns what was there.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.placement[sq]
	if piece == NoPiece {
		return NoPiece
	}
	p.pieces[piece.Color()][piece.Type()] = p.pieces[piece.Color()][piece.Type()].Clear(sq)
	p.placement[sq] = NoPiece
	return piece
}

// movePiece toggles the mover's bits at from and to and moves it in the
// placement table. The destination must be empty.
func (p *Position) movePiece(from, to Square) {
	piece := p.placement[from]
	bb := &p.pieces[piece.Color()][piece.Type()]
	*bb = bb.Toggle(from).Toggle(to)
	p.placement[to] = piece
	p.placement[from] = NoPiece
}

// sync recomputes the occupancy aggregates from the piece bitboards.
func (p *Position) sync() {
	p.occupied[White] = Empty
	p.occupied[Black] = Empty
	for pt := Pawn; pt <= King; pt++ {
		p.occupied[White] |= p.pieces[White][pt]
		p.occupied[Black] |= p.pieces[Black][pt]
	}
	p.all = p.occupied[White] | p.occupied[Black]
}

// withoutPiece returns a copy with the piece on sq removed.
func (p *Position) withoutPiece(sq Square) *Position {
	next := p.clone()
	if next.removePiece(sq) != NoPiece {
		next.sync()
	}
	return next
}

// Key returns the position identity used for repetition detection:
// placement, side to move, castling rights and en passant target. The move
// counters are deliberately left out.
func (p *Position) Key() string {
	var sb strings.Builder
	p.writePlacement(&sb)
	sb.WriteByte(' ')
	sb.WriteByte(p.sideToMove.Char())
	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())
	return sb.String()
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.placement[NewSquare(file, rank)]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}

// Validate checks that the position can arise in a game: exactly one king
// per side, no pawns on the first or last rank, and the side that just moved
// not left in check.
func (p *Position) Validate() error {
	if p.pieces[White][King].PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.pieces[Black][King].PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if (p.pieces[White][Pawn]|p.pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}
	if p.KingInCheck(p.sideToMove.Other()) {
		return fmt.Errorf("%s king is in check but it is %s to move", p.sideToMove.Other(), p.sideToMove)
	}
	return nil
}
