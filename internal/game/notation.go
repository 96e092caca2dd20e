package game

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

var (
	castlingRe   = regexp.MustCompile(`^([0O])-([0O])(-[0O])?([+#])?$`)
	coordinateRe = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])(?:=?([RrNnBbQq]))?$`)
	sanRe        = regexp.MustCompile(`^([RNBQK])?([a-h]|[1-8]|[a-h][1-8])?(?:x)?([a-h][1-8])(?:=?([RrNnBbQq]))?(?:ep)?(?:\+|#)?$`)
)

// Move plays a move written in SAN ("Nf3", "exd6ep", "e8=Q", "O-O", "0-0-0")
// or coordinate notation ("e2e4", "e7e8q", "e1h1" for castling).
func (g *Game) Move(text string) (string, error) {
	text = strings.TrimSpace(text)
	if g.Over() {
		return "", ErrGameOver
	}

	if m := castlingRe.FindStringSubmatch(text); m != nil {
		kind := board.CastlingFor(g.ActiveColor(), m[3] == "")
		from, to := kind.KingSquares()
		return g.play(board.NewMove(from, to), text)
	}

	if m := coordinateRe.FindStringSubmatch(text); m != nil {
		return g.MoveCoord(m[1], m[2], promotionPiece(m[3]))
	}

	if m := sanRe.FindStringSubmatch(text); m != nil {
		pt := board.Pawn
		if m[1] != "" {
			pt = board.PieceTypeFromLetter(m[1][0])
		}
		to, err := board.ParseSquare(m[3])
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrBadNotation, err)
		}
		return g.movePiece(text, pt, m[2], to, promotionPiece(m[4]))
	}

	return "", fmt.Errorf("%w: %q", ErrBadNotation, text)
}

// promotionPiece converts an optional promotion letter.
func promotionPiece(s string) board.PieceType {
	if s == "" {
		return board.NoPieceType
	}
	return board.PieceTypeFromLetter(s[0])
}

// MoveAll plays moves in order, stopping at the first failure.
func (g *Game) MoveAll(moves ...string) error {
	for _, m := range moves {
		if _, err := g.Move(m); err != nil {
			return err
		}
	}
	return nil
}
