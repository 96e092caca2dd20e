package board

// xrayFunc computes the reach of a piece of color c on sq. With attacksOnly
// set, pawns report their diagonal threats instead of pushes and captures.
type xrayFunc func(p *Position, c Color, sq Square, attacksOnly bool) Bitboard

// xrayByType dispatches on the piece type tag.
var xrayByType = [6]xrayFunc{
	Pawn: func(p *Position, c Color, sq Square, attacksOnly bool) Bitboard {
		if attacksOnly {
			return PawnAttackXray(c, sq)
		}
		return PawnXray(c, p.all, sq)
	},
	Knight: func(_ *Position, _ Color, sq Square, _ bool) Bitboard { return KnightXray(sq) },
	Bishop: func(p *Position, _ Color, sq Square, _ bool) Bitboard { return BishopXray(p.all, sq) },
	Rook:   func(p *Position, _ Color, sq Square, _ bool) Bitboard { return RookXray(p.all, sq) },
	Queen:  func(p *Position, _ Color, sq Square, _ bool) Bitboard { return QueenXray(p.all, sq) },
	King:   func(_ *Position, _ Color, sq Square, _ bool) Bitboard { return KingXray(sq) },
}

// AttacksFrom returns the reach of the piece on sq, including squares held
// by its own side. Empty squares reach nothing.
func (p *Position) AttacksFrom(sq Square, attacksOnly bool) Bitboard {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return Empty
	}
	return xrayByType[piece.Type()](p, piece.Color(), sq, attacksOnly)
}

// AllAttacks returns the union of the reach of every piece of color c.
func (p *Position) AllAttacks(c Color, attacksOnly bool) Bitboard {
	var attacks Bitboard
	occ := p.occupied[c]
	for occ != 0 {
		attacks |= p.AttacksFrom(occ.PopLSB(), attacksOnly)
	}
	return attacks
}

// AllAttacksWithoutFriends is AllAttacks minus the squares held by c.
func (p *Position) AllAttacksWithoutFriends(c Color, attacksOnly bool) Bitboard {
	return p.AllAttacks(c, attacksOnly) &^ p.occupied[c]
}

// attackersTo returns the pieces of color by that threaten sq. Pawns count
// through their diagonals only.
func (p *Position) attackersTo(sq Square, by Color) Bitboard {
	them := &p.pieces[by]
	return (PawnAttackXray(by.Other(), sq) & them[Pawn]) |
		(KnightXray(sq) & them[Knight]) |
		(KingXray(sq) & them[King]) |
		(BishopXray(p.all, sq) & (them[Bishop] | them[Queen])) |
		(RookXray(p.all, sq) & (them[Rook] | them[Queen]))
}

// isAttacked reports whether any piece of color by threatens sq.
func (p *Position) isAttacked(sq Square, by Color) bool {
	return p.attackersTo(sq, by) != 0
}

// destinations returns every square the piece on from may move to ignoring
// checks: its reach minus friendly squares, plus the en passant target when
// the piece is a pawn able to take it. Castling is not included.
func (p *Position) destinations(from Square) Bitboard {
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return Empty
	}
	dest := p.AttacksFrom(from, false) &^ p.occupied[piece.Color()]
	if p.enPassant != NoSquare && p.EnPassantCapture(from, p.enPassant) != NoSquare {
		dest = dest.Set(p.enPassant)
	}
	return dest
}

// PseudoLegal reports whether moving from -> to is allowed by piece movement
// alone: the mover belongs to the side to move and the move is a castling
// pattern, an en passant capture, or lands on a square it reaches that is
// not held by its own side. Leaving the king in check is not considered.
func (p *Position) PseudoLegal(from, to Square) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	piece := p.placement[from]
	if piece == NoPiece || piece.Color() != p.sideToMove {
		return false
	}
	if p.CastlingType(from, to) != NoCastling {
		return true
	}
	return p.destinations(from).IsSet(to)
}

// TryMove returns the position after moving the piece on from to to, or
// false if the move leaves the mover's king in check. Side to move, castling
// rights, en passant target and clocks are copied unchanged; Play performs
// that bookkeeping. promo is used when a pawn reaches the last rank.
func (p *Position) TryMove(from, to Square, promo PieceType) (*Position, bool) {
	if !from.IsValid() || !to.IsValid() || from == to {
		return nil, false
	}
	mover := p.placement[from]
	if mover == NoPiece {
		return nil, false
	}

	next := p.clone()
	if next.placement[to] != NoPiece {
		next.removePiece(to)
	} else if victim := p.EnPassantCapture(from, to); victim != NoSquare {
		next.removePiece(victim)
	}
	next.movePiece(from, to)
	if next.requiresPromotion(to) {
		next.promote(to, promo)
	}
	next.sync()

	if next.KingInCheck(mover.Color()) {
		return nil, false
	}
	return next, true
}

// KingInCheck reports whether the king of color c is attacked.
func (p *Position) KingInCheck(c Color) bool {
	king := p.pieces[c][King]
	if king == 0 {
		return false
	}
	return p.isAttacked(SquareOf(king), c.Other())
}

// movers returns the squares of pieces of color c that can legally move to
// target. filter restricts the piece type unless it is NoPieceType.
func (p *Position) movers(c Color, target Square, filter PieceType) []Square {
	var found []Square
	occ := p.occupied[c]
	if filter != NoPieceType {
		occ = p.pieces[c][filter]
	}
	for occ != 0 {
		from := occ.PopLSB()
		if !p.destinations(from).IsSet(target) {
			continue
		}
		if _, ok := p.TryMove(from, target, Queen); ok {
			found = append(found, from)
		}
	}
	return found
}

// KingInCheckmate reports whether the king of color c is checkmated.
func (p *Position) KingInCheckmate(c Color) bool {
	king := p.pieces[c][King]
	if king == 0 || !p.KingInCheck(c) {
		return false
	}
	ksq := SquareOf(king)
	them := c.Other()

	// 1. An escape square: not friendly and not attacked once the king has
	// left its square (so sliders see through it).
	withoutKing := p.withoutPiece(ksq)
	escapes := KingXray(ksq) &^ p.occupied[c]
	for escapes != 0 {
		if !withoutKing.isAttacked(escapes.PopLSB(), them) {
			return false
		}
	}

	// 2. Double check can only be answered by a king move.
	attackers := p.attackersTo(ksq, them)
	if !attackers.HasOnlyOne() {
		return attackers != 0
	}
	attacker := SquareOf(attackers)

	// 3. Capture the checking piece, en passant included.
	if len(p.movers(c, attacker, NoPieceType)) > 0 {
		return false
	}
	if p.enPassant != NoSquare {
		pawns := p.pieces[c][Pawn]
		for pawns != 0 {
			from := pawns.PopLSB()
			if p.EnPassantCapture(from, p.enPassant) != attacker {
				continue
			}
			if _, ok := p.TryMove(from, p.enPassant, Queen); ok {
				return false
			}
		}
	}

	// 4. Interpose on the line between a slider and the king.
	switch p.placement[attacker].Type() {
	case Bishop, Rook, Queen:
		between := p.AttacksFrom(attacker, true) & rayTowards(attacker, ksq)
		between = between.Clear(ksq)
		for between != 0 {
			if len(p.movers(c, between.PopLSB(), NoPieceType)) > 0 {
				return false
			}
		}
	}

	return true
}

// Stalemate reports whether color c has no legal move. It does not look at
// check; IsStalemate combines both.
func (p *Position) Stalemate(c Color) bool {
	occ := p.occupied[c]
	for occ != 0 {
		from := occ.PopLSB()
		dest := p.destinations(from)
		for dest != 0 {
			if _, ok := p.TryMove(from, dest.PopLSB(), Queen); ok {
				return false
			}
		}
	}
	// Castling is never the only legal move: the king could step onto the
	// transit square instead.
	return true
}

// InsufficientMaterial reports whether neither side can deliver mate:
// K vs K, K+N vs K, or kings with bishops all on one square colour.
func (p *Position) InsufficientMaterial() bool {
	if p.OnlyKings() {
		return true
	}
	for c := White; c <= Black; c++ {
		if p.pieces[c][Pawn]|p.pieces[c][Rook]|p.pieces[c][Queen] != 0 {
			return false
		}
	}

	wn, bn := p.pieces[White][Knight], p.pieces[Black][Knight]
	wb, bb := p.pieces[White][Bishop], p.pieces[Black][Bishop]

	if wb|bb == 0 {
		return (wn.HasOnlyOne() && bn == 0) || (bn.HasOnlyOne() && wn == 0)
	}
	if wn|bn != 0 {
		return false
	}
	bishops := wb | bb
	return bishops.OnlyLightSquares() || bishops.OnlyDarkSquares()
}

// FiftyMoveRule reports whether the halfmove clock has reached 50.
func (p *Position) FiftyMoveRule() bool {
	return p.halfMoveClock >= 50
}

// OnlyKings reports whether no piece other than the two kings remains.
func (p *Position) OnlyKings() bool {
	return p.all == p.pieces[White][King]|p.pieces[Black][King]
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.KingInCheck(p.sideToMove)
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.KingInCheckmate(p.sideToMove)
}

// IsStalemate reports whether the side to move has no legal move and is not
// in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && p.Stalemate(p.sideToMove)
}
