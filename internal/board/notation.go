package board

import "strings"

// Notation returns the SAN of moving from -> to in this position, without
// check or mate markers. The move is assumed legal. Pawn captures carry the
// origin file, en passant captures the "ep" suffix, and promotions the piece
// the pawn becomes ("=Q" when promo is not a valid promotion piece).
func (p *Position) Notation(from, to Square, promo PieceType) string {
	if kind := p.CastlingType(from, to); kind != NoCastling {
		return kind.String()
	}

	piece := p.PieceAt(from)
	if piece == NoPiece {
		return NewMove(from, to).String()
	}
	pt := piece.Type()

	enPassant := p.EnPassantCapture(from, to) != NoSquare
	capture := enPassant || p.placement[to] != NoPiece

	var sb strings.Builder
	if pt == Pawn {
		if capture {
			sb.WriteByte(from.FileChar())
		}
	} else {
		sb.WriteByte(pt.Letter())
		sb.WriteString(p.disambiguation(from, to, pt))
	}
	if capture {
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())
	if enPassant {
		sb.WriteString("ep")
	}
	if pp := p.promotionFor(from, to, promo); pp != NoPieceType {
		sb.WriteByte('=')
		sb.WriteByte(pp.Letter())
	}
	return sb.String()
}

// disambiguation returns the origin qualifier needed when other pieces of
// the same type can legally reach to: the file if it differs from every
// competitor, else the rank if that does, else the full square.
func (p *Position) disambiguation(from, to Square, pt PieceType) string {
	sameFile, sameRank, competitors := false, false, false
	for _, sq := range p.movers(p.placement[from].Color(), to, pt) {
		if sq == from {
			continue
		}
		competitors = true
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !competitors:
		return ""
	case !sameFile:
		return string(from.FileChar())
	case !sameRank:
		return string(from.RankChar())
	default:
		return from.String()
	}
}

// CoordinateNotation returns "<from><to>" plus "=<Piece>" when the move
// promotes, naming the piece the pawn actually becomes.
func (p *Position) CoordinateNotation(from, to Square, promo PieceType) string {
	s := from.String() + to.String()
	if pp := p.promotionFor(from, to, promo); pp != NoPieceType {
		s += "=" + string(pp.Letter())
	}
	return s
}
