package board

import "sort"

// promotionOrder lists promotion pieces in the order moves are generated.
var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// LegalMoves returns every legal move of the side to move, castling and
// each promotion piece included.
func (p *Position) LegalMoves() []Move {
	var moves []Move
	occ := p.occupied[p.sideToMove]
	for occ != 0 {
		moves = p.appendLegalMoves(moves, occ.PopLSB())
	}
	return moves
}

// appendLegalMoves appends the legal moves of the piece on from.
func (p *Position) appendLegalMoves(moves []Move, from Square) []Move {
	dest := p.destinations(from)
	for dest != 0 {
		to := dest.PopLSB()
		if _, ok := p.TryMove(from, to, Queen); !ok {
			continue
		}
		if p.promotionFor(from, to, Queen) == NoPieceType {
			moves = append(moves, NewMove(from, to))
			continue
		}
		for _, promo := range promotionOrder {
			moves = append(moves, NewPromotion(from, to, promo))
		}
	}
	if p.placement[from].Type() == King {
		for kind := WhiteShort; kind <= BlackLong; kind++ {
			kingFrom, kingTo := kind.KingSquares()
			if kingFrom == from && p.CastlingType(from, kingTo) == kind {
				moves = append(moves, NewMove(from, kingTo))
			}
		}
	}
	return moves
}

// GenerateMoves returns the SAN of every legal move of the piece on sq.
// Squares that are empty or hold a piece of the side not to move yield nil.
func (p *Position) GenerateMoves(sq Square) []string {
	piece := p.PieceAt(sq)
	if piece == NoPiece || piece.Color() != p.sideToMove {
		return nil
	}
	var sans []string
	for _, m := range p.appendLegalMoves(nil, sq) {
		sans = append(sans, p.Notation(m.From(), m.To(), m.Promotion()))
	}
	return sans
}

// GenerateAllMoves returns the SAN of every legal move of the side to move,
// sorted.
func (p *Position) GenerateAllMoves() []string {
	var sans []string
	occ := p.occupied[p.sideToMove]
	for occ != 0 {
		sans = append(sans, p.GenerateMoves(occ.PopLSB())...)
	}
	sort.Strings(sans)
	return sans
}
