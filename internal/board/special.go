package board

// Castling identifies one of the four castling moves.
type Castling uint8

const (
	NoCastling Castling = iota
	WhiteShort
	WhiteLong
	BlackShort
	BlackLong
)

type castlingMove struct {
	color    Color
	right    CastlingRights
	kingFrom Square
	kingTo   Square
	rookFrom Square
	rookTo   Square
	between  Bitboard  // must be empty
	path     [3]Square // king start, transit and end: must not be attacked
	notation string
}

var castlingMoves = [5]castlingMove{
	WhiteShort: {
		color: White, right: WhiteKingSideCastle,
		kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1,
		between: SquareBB(F1) | SquareBB(G1), path: [3]Square{E1, F1, G1},
		notation: "O-O",
	},
	WhiteLong: {
		color: White, right: WhiteQueenSideCastle,
		kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1,
		between: SquareBB(B1) | SquareBB(C1) | SquareBB(D1), path: [3]Square{E1, D1, C1},
		notation: "O-O-O",
	},
	BlackShort: {
		color: Black, right: BlackKingSideCastle,
		kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8,
		between: SquareBB(F8) | SquareBB(G8), path: [3]Square{E8, F8, G8},
		notation: "O-O",
	},
	BlackLong: {
		color: Black, right: BlackQueenSideCastle,
		kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8,
		between: SquareBB(B8) | SquareBB(C8) | SquareBB(D8), path: [3]Square{E8, D8, C8},
		notation: "O-O-O",
	},
}

// String returns the castling notation, "" for NoCastling.
func (c Castling) String() string {
	if c == NoCastling || c > BlackLong {
		return ""
	}
	return castlingMoves[c].notation
}

// CastlingFor returns the castling move of color c on the given wing.
func CastlingFor(c Color, kingSide bool) Castling {
	switch {
	case c == White && kingSide:
		return WhiteShort
	case c == White:
		return WhiteLong
	case kingSide:
		return BlackShort
	default:
		return BlackLong
	}
}

// KingSquares returns the king's origin and destination for the castling.
func (c Castling) KingSquares() (from, to Square) {
	cm := &castlingMoves[c]
	return cm.kingFrom, cm.kingTo
}

// castlingRightsLost holds, per square, the rights that vanish when a piece
// leaves or is captured on it.
var castlingRightsLost = func() (lost [64]CastlingRights) {
	lost[E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	lost[H1] = WhiteKingSideCastle
	lost[A1] = WhiteQueenSideCastle
	lost[E8] = BlackKingSideCastle | BlackQueenSideCastle
	lost[H8] = BlackKingSideCastle
	lost[A8] = BlackQueenSideCastle
	return lost
}()

// CastlingType reports which castling, if any, moving the king from -> to
// performs. It requires the right, the king and rook on their home squares,
// empty squares between them, and no attack on the king's start, transit or
// end square.
func (p *Position) CastlingType(from, to Square) Castling {
	for kind := WhiteShort; kind <= BlackLong; kind++ {
		cm := &castlingMoves[kind]
		if cm.kingFrom != from || cm.kingTo != to {
			continue
		}
		if p.castlingRights&cm.right == 0 ||
			p.placement[cm.kingFrom] != NewPiece(King, cm.color) ||
			p.placement[cm.rookFrom] != NewPiece(Rook, cm.color) ||
			p.all&cm.between != 0 {
			return NoCastling
		}
		for _, sq := range cm.path {
			if p.isAttacked(sq, cm.color.Other()) {
				return NoCastling
			}
		}
		return kind
	}
	return NoCastling
}

// applyCastling moves king and rook together and drops both rights of the
// castling side. The caller has checked CastlingType.
func (p *Position) applyCastling(kind Castling) *Position {
	cm := &castlingMoves[kind]
	next := p.clone()
	next.movePiece(cm.kingFrom, cm.kingTo)
	next.movePiece(cm.rookFrom, cm.rookTo)
	next.castlingRights &^= castlingRightsLost[cm.kingFrom]
	next.sync()
	return next
}

// updateCastling clears the rights tied to the squares a move left or
// landed on.
func (p *Position) updateCastling(from, to Square) {
	p.castlingRights &^= castlingRightsLost[from] | castlingRightsLost[to]
}

// updateEnPassant sets the en passant target after a double pawn push and
// clears it otherwise. It runs on the position after the move.
func (p *Position) updateEnPassant(from, to Square) {
	p.enPassant = NoSquare
	if p.placement[to].Type() != Pawn {
		return
	}
	if d := int(to) - int(from); d == 16 || d == -16 {
		p.enPassant = Square((int(from) + int(to)) / 2)
	}
}

// EnPassantCapture returns the square of the pawn captured when the pawn on
// from moves to to en passant, or NoSquare if the move is not en passant.
func (p *Position) EnPassantCapture(from, to Square) Square {
	if p.enPassant == NoSquare || to != p.enPassant || !from.IsValid() {
		return NoSquare
	}
	mover := p.placement[from]
	if mover.Type() != Pawn {
		return NoSquare
	}
	c := mover.Color()
	if !PawnAttackXray(c, from).IsSet(to) {
		return NoSquare
	}
	victim := to - 8
	if c == Black {
		victim = to + 8
	}
	if p.placement[victim] != NewPiece(Pawn, c.Other()) {
		return NoSquare
	}
	return victim
}

// requiresPromotion reports whether the piece on sq is a pawn on its last rank.
func (p *Position) requiresPromotion(sq Square) bool {
	return p.placement[sq].Type() == Pawn && (Rank1|Rank8).IsSet(sq)
}

// promote replaces the pawn on sq with a piece of the pawn's color. Types a
// pawn cannot become fall back to a queen.
func (p *Position) promote(sq Square, promo PieceType) {
	if !promo.IsPromotion() {
		promo = Queen
	}
	pawn := p.removePiece(sq)
	p.putPiece(NewPiece(promo, pawn.Color()), sq)
}

// promotionFor returns the piece a pawn moving from -> to becomes, or
// NoPieceType when the move is not a promotion.
func (p *Position) promotionFor(from, to Square, promo PieceType) PieceType {
	if p.placement[from].Type() != Pawn || !(Rank1 | Rank8).IsSet(to) {
		return NoPieceType
	}
	if !promo.IsPromotion() {
		return Queen
	}
	return promo
}

// Play validates and plays m, returning the resulting position and the
// move's SAN without check markers. Castling rights, en passant target, side
// to move and both clocks are updated.
func (p *Position) Play(m Move) (*Position, string, error) {
	from, to := m.From(), m.To()
	if !p.PseudoLegal(from, to) {
		return nil, "", ErrIllegalMove
	}

	mover := p.placement[from]
	resetClock := mover.Type() == Pawn

	var next *Position
	var san string
	if kind := p.CastlingType(from, to); kind != NoCastling {
		next = p.applyCastling(kind)
		san = kind.String()
	} else {
		var ok bool
		next, ok = p.TryMove(from, to, m.Promotion())
		if !ok {
			return nil, "", ErrIllegalMove
		}
		san = p.Notation(from, to, m.Promotion())
		if p.placement[to] != NoPiece {
			resetClock = true
		}
	}

	next.updateCastling(from, to)
	next.updateEnPassant(from, to)
	if resetClock {
		next.halfMoveClock = 0
	} else {
		next.halfMoveClock++
	}
	if mover.Color() == Black {
		next.fullMoveNumber++
	}
	next.sideToMove = mover.Color().Other()
	return next, san, nil
}
