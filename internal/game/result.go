package game

import "github.com/hailam/chessrules/internal/board"

// Result is the outcome tag of a game.
type Result int

const (
	InProgress Result = iota
	WhiteWon
	BlackWon
	Draw
)

// String returns the PGN result token.
func (r Result) String() string {
	switch r {
	case WhiteWon:
		return "1-0"
	case BlackWon:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// ParseResult converts a PGN result token. Unknown tokens map to InProgress.
func ParseResult(s string) Result {
	switch s {
	case "1-0":
		return WhiteWon
	case "0-1":
		return BlackWon
	case "1/2-1/2":
		return Draw
	default:
		return InProgress
	}
}

// winner returns the result of a win by color c.
func winner(c board.Color) Result {
	if c == board.White {
		return WhiteWon
	}
	return BlackWon
}

// Status explains how a game reached its result.
type Status int

const (
	StatusInProgress Status = iota
	StatusWhiteWon
	StatusBlackWon
	StatusWhiteWonResign
	StatusBlackWonResign
	StatusStalemate
	StatusInsufficientMaterial
	StatusFiftyMoveRule
	StatusThreefoldRepetition
	StatusUnknown
)

var statusNames = [...]string{
	StatusInProgress:           "in_progress",
	StatusWhiteWon:             "white_won",
	StatusBlackWon:             "black_won",
	StatusWhiteWonResign:       "white_won_resign",
	StatusBlackWonResign:       "black_won_resign",
	StatusStalemate:            "stalemate",
	StatusInsufficientMaterial: "insufficient_material",
	StatusFiftyMoveRule:        "fifty_move_rule",
	StatusThreefoldRepetition:  "threefold_repetition",
	StatusUnknown:              "unknown",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}
