// Package game keeps the history of a chess game: the positions reached,
// the moves played in both notations, and the result.
package game

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
)

// SetByFEN is the origin tag of a game whose first position was loaded
// from a FEN string.
const SetByFEN = "SET BY FEN"

// MoveRecord is one played move in both notations.
type MoveRecord struct {
	SAN   string `json:"san"`
	Coord string `json:"coord"`
}

// Game is an append-only history of positions. positions[0] is the initial
// position and positions[i+1] follows moves[i], so len(positions) is always
// len(moves)+1.
//
// A Game is not safe for concurrent use.
type Game struct {
	positions []*board.Position
	moves     []MoveRecord
	result    Result
	origin    string
	logger    *zap.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for rejected moves and results.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New starts a game from the standard position.
func New(opts ...Option) *Game {
	g := &Game{
		positions: []*board.Position{board.NewPosition()},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromFEN starts a game from a FEN position.
func FromFEN(fen string, opts ...Option) (*Game, error) {
	g := New(opts...)
	if err := g.LoadFEN(fen); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadFEN replaces the whole history with the given position and evaluates
// it for checkmate, stalemate and insufficient material.
func (g *Game) LoadFEN(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	g.positions = []*board.Position{pos}
	g.moves = nil
	g.origin = SetByFEN
	g.result = InProgress

	switch {
	case pos.IsCheckmate():
		g.result = winner(pos.SideToMove().Other())
	case pos.IsStalemate(), pos.InsufficientMaterial():
		g.result = Draw
	}
	g.logger.Debug("position loaded", zap.String("fen", fen), zap.Stringer("result", g.result))
	return nil
}

// ApplyMove plays from -> to. promo selects the promotion piece and is
// ignored unless a pawn reaches the last rank; invalid pieces promote to a
// queen. It returns the move's SAN, check markers included.
func (g *Game) ApplyMove(from, to board.Square, promo board.PieceType) (string, error) {
	m := board.NewPromotion(from, to, promo)
	return g.play(m, m.String())
}

// MoveCoord plays a move given by square names ("e2", "e4").
func (g *Game) MoveCoord(from, to string, promo board.PieceType) (string, error) {
	text := from + to
	f, err := board.ParseSquare(from)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	t, err := board.ParseSquare(to)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	f, t = g.uciCastling(f, t)
	return g.play(board.NewPromotion(f, t, promo), text)
}

// MoveIndex plays a move given by square indexes (0 = a1, 63 = h8).
func (g *Game) MoveIndex(from, to int, promo board.PieceType) (string, error) {
	f, err := board.SquareFromIndex(from)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	t, err := board.SquareFromIndex(to)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	return g.ApplyMove(f, t, promo)
}

// MovePiece plays the single piece of type pt that can reach to. The
// disambiguator may name the origin file, rank or both.
func (g *Game) MovePiece(pt board.PieceType, disambiguator string, to board.Square, promo board.PieceType) (string, error) {
	text := disambiguator + to.String()
	if pt != board.Pawn {
		text = string(pt.Letter()) + text
	}
	return g.movePiece(text, pt, disambiguator, to, promo)
}

func (g *Game) movePiece(text string, pt board.PieceType, disambiguator string, to board.Square, promo board.PieceType) (string, error) {
	if g.Over() {
		return "", ErrGameOver
	}
	from, err := g.Current().ResolveMove(pt, disambiguator, to, promo)
	if err != nil {
		g.logger.Debug("move rejected", zap.String("move", text), zap.Error(err))
		return "", &IllegalMoveError{Move: text, Err: err}
	}
	return g.play(board.NewPromotion(from, to, promo), text)
}

// uciCastling maps king-takes-own-rook input ("e1h1") to the king's
// castling destination. Anything else is returned unchanged.
func (g *Game) uciCastling(from, to board.Square) (board.Square, board.Square) {
	pos := g.Current()
	king := pos.PieceAt(from)
	if king.Type() != board.King || pos.PieceAt(to) != board.NewPiece(board.Rook, king.Color()) {
		return from, to
	}
	for _, kingSide := range []bool{true, false} {
		kind := board.CastlingFor(king.Color(), kingSide)
		kingFrom, kingTo := kind.KingSquares()
		if kingFrom != from {
			continue
		}
		if (kingSide && to.File() == 7) || (!kingSide && to.File() == 0) {
			return from, kingTo
		}
	}
	return from, to
}

// play applies m to the current position and records it.
func (g *Game) play(m board.Move, text string) (string, error) {
	if g.Over() {
		return "", ErrGameOver
	}
	cur := g.Current()
	next, san, err := cur.Play(m)
	if err != nil {
		g.logger.Debug("move rejected", zap.String("move", text), zap.String("fen", cur.ToFEN()))
		return "", &IllegalMoveError{Move: text, Err: err}
	}
	coord := cur.CoordinateNotation(m.From(), m.To(), m.Promotion())

	switch {
	case next.IsCheckmate():
		san += "#"
		g.result = winner(cur.SideToMove())
	case next.InCheck():
		san += "+"
	case next.InsufficientMaterial(), next.IsStalemate():
		g.result = Draw
	}

	g.positions = append(g.positions, next)
	g.moves = append(g.moves, MoveRecord{SAN: san, Coord: coord})

	if g.result != InProgress {
		g.logger.Info("game over",
			zap.Stringer("result", g.result),
			zap.Stringer("status", g.Status()),
			zap.Int("plies", len(g.moves)))
	}
	return san, nil
}

// Rollback takes back the last move and reopens the game.
func (g *Game) Rollback() error {
	if len(g.moves) == 0 {
		return ErrNoMoves
	}
	g.positions[len(g.positions)-1] = nil
	g.positions = g.positions[:len(g.positions)-1]
	g.moves = g.moves[:len(g.moves)-1]
	g.result = InProgress
	return nil
}

// ThreefoldRepetition reports whether some position, ignoring the move
// counters, occurred at least three times. At least six plies are needed.
func (g *Game) ThreefoldRepetition() bool {
	if len(g.moves) < 6 {
		return false
	}
	keys := make([]string, len(g.positions))
	for i, pos := range g.positions {
		keys[i] = pos.Key()
	}
	sort.Strings(keys)
	for i := 2; i < len(keys); i++ {
		if keys[i] == keys[i-2] {
			return true
		}
	}
	return false
}

// Resign ends the game with a win for c's opponent.
func (g *Game) Resign(c board.Color) error {
	if g.Over() {
		return ErrGameOver
	}
	g.result = winner(c.Other())
	g.logger.Info("resignation", zap.Stringer("color", c), zap.Stringer("result", g.result))
	return nil
}

// Draw ends the game as a draw.
func (g *Game) Draw() error {
	if g.Over() {
		return ErrGameOver
	}
	g.result = Draw
	g.logger.Info("draw", zap.Stringer("status", g.Status()))
	return nil
}

// Result returns the current result tag.
func (g *Game) Result() Result {
	return g.result
}

// Over reports whether the game has a result.
func (g *Game) Over() bool {
	return g.result != InProgress
}

// Status explains the result using the current position: a win without
// mate on the board was a resignation, and a draw is attributed to the
// first of stalemate, insufficient material, the fifty-move rule and
// threefold repetition that holds.
func (g *Game) Status() Status {
	cur := g.Current()
	switch g.result {
	case InProgress:
		return StatusInProgress
	case WhiteWon:
		if cur.IsCheckmate() {
			return StatusWhiteWon
		}
		return StatusWhiteWonResign
	case BlackWon:
		if cur.IsCheckmate() {
			return StatusBlackWon
		}
		return StatusBlackWonResign
	}

	switch {
	case cur.IsStalemate():
		return StatusStalemate
	case cur.InsufficientMaterial():
		return StatusInsufficientMaterial
	case cur.FiftyMoveRule():
		return StatusFiftyMoveRule
	case g.ThreefoldRepetition():
		return StatusThreefoldRepetition
	default:
		return StatusUnknown
	}
}

// Position returns the i-th position (0 is the initial one), or nil if i is
// out of range.
func (g *Game) Position(i int) *board.Position {
	if i < 0 || i >= len(g.positions) {
		return nil
	}
	return g.positions[i]
}

// Current returns the latest position.
func (g *Game) Current() *board.Position {
	return g.positions[len(g.positions)-1]
}

// Moves returns the SAN of every move played.
func (g *Game) Moves() []string {
	sans := make([]string, len(g.moves))
	for i, rec := range g.moves {
		sans[i] = rec.SAN
	}
	return sans
}

// CoordMoves returns the coordinate notation of every move played.
func (g *Game) CoordMoves() []string {
	coords := make([]string, len(g.moves))
	for i, rec := range g.moves {
		coords[i] = rec.Coord
	}
	return coords
}

// Records returns a copy of the move records.
func (g *Game) Records() []MoveRecord {
	return append([]MoveRecord(nil), g.moves...)
}

// Size returns the number of moves played.
func (g *Game) Size() int {
	return len(g.moves)
}

// ActiveColor returns the side to move.
func (g *Game) ActiveColor() board.Color {
	return g.Current().SideToMove()
}

// Origin returns SetByFEN if the game started from a loaded position and ""
// otherwise.
func (g *Game) Origin() string {
	return g.origin
}

// Each calls fn for every move with its index and the position it led to,
// stopping early when fn returns false.
func (g *Game) Each(fn func(i int, pos *board.Position, rec MoveRecord) bool) {
	for i, rec := range g.moves {
		if !fn(i, g.positions[i+1], rec) {
			return
		}
	}
}
