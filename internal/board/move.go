package board

import (
	"fmt"
	"strings"
)

// Move encodes a requested move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-14: promotion piece type (Knight..Queen), 0 if none
//
// A Move is only a request; castling and en passant are recognised from the
// position when it is played.
type Move uint16

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move without a promotion piece.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a move carrying a promotion piece. Types that a pawn
// cannot promote to are dropped, so the move promotes to a queen if needed.
func NewPromotion(from, to Square, promo PieceType) Move {
	m := NewMove(from, to)
	if promo.IsPromotion() {
		m |= Move(promo) << 12
	}
	return m
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the requested promotion piece, NoPieceType if none.
func (m Move) Promotion() PieceType {
	pt := PieceType((m >> 12) & 7)
	if !pt.IsPromotion() {
		return NoPieceType
	}
	return pt
}

// String returns the coordinate notation of the move ("e2e4", "e7e8=Q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.Promotion(); promo != NoPieceType {
		s += "=" + string(promo.Letter())
	}
	return s
}

// ParseMove parses coordinate notation: "e2e4", "e7e8=Q", "e7e8q".
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || len(s) > 6 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	rest := strings.TrimPrefix(s[4:], "=")
	switch len(rest) {
	case 0:
		return NewMove(from, to), nil
	case 1:
		promo := PieceTypeFromLetter(rest[0])
		if !promo.IsPromotion() {
			return NoMove, fmt.Errorf("invalid promotion piece: %c", rest[0])
		}
		return NewPromotion(from, to, promo), nil
	default:
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
}
