package pgn

import (
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

var figurines = [2]*strings.Replacer{
	board.White: strings.NewReplacer("K", "♔", "Q", "♕", "R", "♖", "B", "♗", "N", "♘"),
	board.Black: strings.NewReplacer("K", "♚", "Q", "♛", "R", "♜", "B", "♝", "N", "♞"),
}

// ToFigurine replaces the piece letters of a SAN move with the chess glyphs
// of the mover's color ("Qf7#" becomes "♕f7#"). Files and castling are left
// alone.
func ToFigurine(san string, c board.Color) string {
	if c != board.White && c != board.Black {
		return san
	}
	return figurines[c].Replace(san)
}

// FigurineMoves returns the moves with figurine piece letters, alternating
// colors from the side that made the first move.
func (p *PGN) FigurineMoves() []string {
	_, first := p.start()
	out := make([]string, len(p.Moves))
	for i, m := range p.Moves {
		c := first
		if i%2 == 1 {
			c = first.Other()
		}
		out[i] = ToFigurine(m, c)
	}
	return out
}
