package board

import "errors"

var (
	// ErrInvalidFEN is wrapped by every ParseFEN failure.
	ErrInvalidFEN = errors.New("invalid FEN")
	// ErrInvalidSquare reports a square name or index off the board.
	ErrInvalidSquare = errors.New("invalid square")
	// ErrIllegalMove reports a move the rules do not allow.
	ErrIllegalMove = errors.New("illegal move")
	// ErrAmbiguousMove reports a move description matching several pieces.
	ErrAmbiguousMove = errors.New("ambiguous move")
)
