package board

import "fmt"

// ResolveMove finds the origin square of the single piece of type pt, owned
// by the side to move, that can legally move to to. disambiguator may hold a
// file letter, a rank digit or both ("", "b", "6", "c6"). Pawn captures must
// name their origin file.
func (p *Position) ResolveMove(pt PieceType, disambiguator string, to Square, promo PieceType) (Square, error) {
	if pt >= NoPieceType || !to.IsValid() {
		return NoSquare, ErrIllegalMove
	}

	file, rank := -1, -1
	for i := 0; i < len(disambiguator); i++ {
		switch c := disambiguator[i]; {
		case c >= 'a' && c <= 'h' && file < 0:
			file = int(c - 'a')
		case c >= '1' && c <= '8' && rank < 0:
			rank = int(c - '1')
		default:
			return NoSquare, fmt.Errorf("%w: bad disambiguator %q", ErrIllegalMove, disambiguator)
		}
	}

	from, found := NoSquare, 0
	candidates := p.pieces[p.sideToMove][pt]
	for candidates != 0 {
		sq := candidates.PopLSB()
		if (file >= 0 && sq.File() != file) || (rank >= 0 && sq.Rank() != rank) {
			continue
		}
		if !p.destinations(sq).IsSet(to) {
			continue
		}
		if _, ok := p.TryMove(sq, to, promo); !ok {
			continue
		}
		from = sq
		found++
	}

	switch {
	case found == 0:
		return NoSquare, ErrIllegalMove
	case found > 1:
		return NoSquare, ErrAmbiguousMove
	}
	if pt == Pawn && file < 0 && from.File() != to.File() {
		return NoSquare, fmt.Errorf("%w: pawn capture needs its origin file", ErrIllegalMove)
	}
	return from, nil
}
