package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is matched by every IllegalMoveError.
	ErrIllegalMove = errors.New("illegal move")
	// ErrBadNotation reports move text that is neither SAN nor coordinate notation.
	ErrBadNotation = errors.New("bad notation")
	// ErrGameOver reports an attempt to change a finished game.
	ErrGameOver = errors.New("game is over")
	// ErrNoMoves reports a rollback with no move to take back.
	ErrNoMoves = errors.New("no moves to roll back")
)

// IllegalMoveError reports a rejected move. History is left unchanged.
type IllegalMoveError struct {
	Move string
	Err  error // underlying board error, may be nil
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move '%s'", e.Move)
}

// Unwrap exposes both ErrIllegalMove and the board-level cause.
func (e *IllegalMoveError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrIllegalMove}
	}
	return []error{ErrIllegalMove, e.Err}
}
