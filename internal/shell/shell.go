// Package shell implements a line-oriented command interpreter over a game.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/diagram"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/pgn"
	"github.com/hailam/chessrules/internal/storage"
)

// ErrNoStorage is returned by archive commands when no database is open.
var ErrNoStorage = errors.New("no game archive configured")

// Shell reads commands, one per line, and applies them to the current game.
type Shell struct {
	game   *game.Game
	gameID string
	tags   map[string]string

	store     *storage.Storage
	prefs     *storage.Preferences
	exportDir string

	in     io.Reader
	out    io.Writer
	logger *zap.Logger

	colored bool
	ok      *color.Color
	warn    *color.Color
	fail    *color.Color
	dim     *color.Color
}

// Option configures a Shell.
type Option func(*Shell)

// WithStorage enables save, load, list, find and stats.
func WithStorage(s *storage.Storage) Option {
	return func(sh *Shell) { sh.store = s }
}

// WithLogger sets the logger shared with the games the shell creates.
func WithLogger(l *zap.Logger) Option {
	return func(sh *Shell) {
		if l != nil {
			sh.logger = l
		}
	}
}

// WithColor turns ANSI colors on or off.
func WithColor(on bool) Option {
	return func(sh *Shell) { sh.colored = on }
}

// WithExportDir sets where diagrams go when no file name is given.
func WithExportDir(dir string) Option {
	return func(sh *Shell) { sh.exportDir = dir }
}

// New creates a shell reading from in and writing to out, starting with a
// new game.
func New(in io.Reader, out io.Writer, opts ...Option) *Shell {
	sh := &Shell{
		in:      in,
		out:     out,
		logger:  zap.NewNop(),
		tags:    map[string]string{},
		colored: true,
		ok:      color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		dim:     color.New(color.Faint),
	}
	for _, opt := range opts {
		opt(sh)
	}
	for _, c := range []*color.Color{sh.ok, sh.warn, sh.fail, sh.dim} {
		if sh.colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	sh.prefs = storage.DefaultPreferences()
	if sh.store != nil {
		if prefs, err := sh.store.LoadPreferences(); err == nil {
			sh.prefs = prefs
		} else {
			sh.logger.Warn("preferences not loaded", zap.Error(err))
		}
	}
	sh.game = game.New(game.WithLogger(sh.logger))
	return sh
}

// Game returns the current game.
func (sh *Shell) Game() *game.Game {
	return sh.game
}

// SetGame replaces the current game. The next save creates a new record.
func (sh *Shell) SetGame(g *game.Game) {
	sh.game = g
	sh.gameID = ""
	sh.tags = map[string]string{}
}

// Run executes commands until quit or end of input. Failing commands are
// reported and do not stop the loop.
func (sh *Shell) Run() error {
	scanner := bufio.NewScanner(sh.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		quit, err := sh.Execute(line)
		if err != nil {
			sh.logger.Debug("command failed", zap.String("line", line), zap.Error(err))
			sh.fail.Fprintf(sh.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. Text that is not a command is played
// as a move.
func (sh *Shell) Execute(line string) (quit bool, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		sh.handleHelp()
	case "new":
		sh.SetGame(game.New(game.WithLogger(sh.logger)))
		sh.println("new game")
	case "fen":
		err = sh.handleFEN(args)
	case "move", "m":
		err = sh.handleMove(args)
	case "undo":
		err = sh.game.Rollback()
		if err == nil {
			sh.println(sh.game.Current().ToFEN())
		}
	case "moves":
		sh.handleMoves()
	case "gen":
		err = sh.handleGen(args)
	case "board", "d":
		sh.println(sh.game.Current().String())
	case "status":
		sh.handleStatus()
	case "resign":
		err = sh.handleResign(args)
	case "draw":
		err = sh.game.Draw()
		if err == nil {
			sh.reportResult()
		}
	case "tag":
		err = sh.handleTag(args)
	case "figurine":
		err = sh.handleFigurine(args)
	case "pgn":
		err = sh.handlePGN(args)
	case "import":
		err = sh.handleImport(args)
	case "png", "svg":
		err = sh.handleDiagram(cmd, args)
	case "save":
		err = sh.handleSave()
	case "load":
		err = sh.handleLoad(args)
	case "list":
		err = sh.handleList()
	case "find":
		err = sh.handleFind()
	case "stats":
		err = sh.handleStats()
	default:
		err = sh.handleMove(parts)
	}
	return false, err
}

func (sh *Shell) println(a ...interface{}) {
	fmt.Fprintln(sh.out, a...)
}

func (sh *Shell) handleHelp() {
	sh.println(`commands:
  new                      start a new game
  fen [<fen>]              show the position, or start from one
  move <move>...           play moves (SAN or coordinates); bare moves work too
  undo                     take back the last move
  moves                    list the moves played
  gen [<square>]           legal moves, from one square or all
  board                    print the board
  status                   result, check and draw conditions
  resign [white|black]     resign for the side to move or the given side
  draw                     agree to a draw
  tag <name> <value>       set a PGN tag
  figurine on|off          show moves with piece glyphs
  pgn [<file>]             print or write the game as PGN
  import <file>            replay a PGN file
  png|svg [<file>]         write a diagram of the position
  save                     archive the game
  load [<id>]              restore an archived game
  list                     list archived games
  find                     archived games reaching this position
  stats                    archived results
  quit                     leave`)
}

func (sh *Shell) handleFEN(args []string) error {
	if len(args) == 0 {
		sh.println(sh.game.Current().ToFEN())
		return nil
	}
	g, err := game.FromFEN(strings.Join(args, " "), game.WithLogger(sh.logger))
	if err != nil {
		return err
	}
	sh.SetGame(g)
	sh.println(g.Current().String())
	if g.Over() {
		sh.reportResult()
	}
	return nil
}

func (sh *Shell) handleMove(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("move: nothing to play")
	}
	for _, text := range args {
		number, side := sh.game.Current().FullMoveNumber(), sh.game.ActiveColor()
		san, err := sh.game.Move(text)
		if err != nil {
			return err
		}
		if sh.prefs.Figurine {
			san = pgn.ToFigurine(san, side)
		}
		if side == board.White {
			fmt.Fprintf(sh.out, "%d. %s\n", number, san)
		} else {
			fmt.Fprintf(sh.out, "%d... %s\n", number, san)
		}
	}
	if sh.game.Over() {
		sh.reportResult()
	} else if sh.game.ThreefoldRepetition() || sh.game.Current().FiftyMoveRule() {
		sh.warn.Fprintln(sh.out, "a draw may be claimed")
	}
	return nil
}

func (sh *Shell) handleMoves() {
	p := pgn.FromGame(sh.game, sh.tags)
	if sh.prefs.Figurine {
		p.Moves = p.FigurineMoves()
	}
	out := p.String()
	// drop the tag section
	if i := strings.Index(out, "\n\n"); i >= 0 {
		out = out[i+2:]
	}
	fmt.Fprint(sh.out, out)
}

func (sh *Shell) handleGen(args []string) error {
	pos := sh.game.Current()
	var moves []string
	if len(args) == 0 {
		moves = pos.GenerateAllMoves()
	} else {
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			return err
		}
		moves = pos.GenerateMoves(sq)
	}
	if len(moves) == 0 {
		sh.dim.Fprintln(sh.out, "no moves")
		return nil
	}
	sh.println(strings.Join(moves, " "))
	return nil
}

func (sh *Shell) handleStatus() {
	g := sh.game
	pos := g.Current()
	fmt.Fprintf(sh.out, "result: %s (%s)\n", g.Result(), g.Status())
	fmt.Fprintf(sh.out, "to move: %s, move %d, plies %d\n", pos.SideToMove(), pos.FullMoveNumber(), g.Size())
	if pos.InCheck() && !g.Over() {
		sh.warn.Fprintln(sh.out, "check")
	}
	if g.ThreefoldRepetition() {
		sh.warn.Fprintln(sh.out, "threefold repetition")
	}
	if pos.FiftyMoveRule() {
		sh.warn.Fprintln(sh.out, "fifty-move rule")
	}
}

func (sh *Shell) handleResign(args []string) error {
	c := sh.game.ActiveColor()
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "white", "w":
			c = board.White
		case "black", "b":
			c = board.Black
		default:
			return fmt.Errorf("resign: unknown side %q", args[0])
		}
	}
	if err := sh.game.Resign(c); err != nil {
		return err
	}
	sh.reportResult()
	return nil
}

func (sh *Shell) handleTag(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tag <name> <value>")
	}
	sh.tags[args[0]] = strings.Join(args[1:], " ")
	return nil
}

func (sh *Shell) handleFigurine(args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return fmt.Errorf("usage: figurine on|off")
	}
	sh.prefs.Figurine = args[0] == "on"
	return sh.savePreferences()
}

func (sh *Shell) handlePGN(args []string) error {
	text := pgn.FromGame(sh.game, sh.tags).String()
	if len(args) == 0 {
		fmt.Fprint(sh.out, text)
		return nil
	}
	if err := os.WriteFile(args[0], []byte(text), 0644); err != nil {
		return err
	}
	sh.ok.Fprintf(sh.out, "wrote %s\n", args[0])
	return nil
}

func (sh *Shell) handleImport(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: import <file>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := pgn.Parse(f)
	if err != nil {
		return err
	}
	g, err := p.Replay(game.WithLogger(sh.logger))
	if err != nil {
		return err
	}
	sh.SetGame(g)
	for k, v := range p.Tags {
		if k != "FEN" && k != "SetUp" && k != "Result" {
			sh.tags[k] = v
		}
	}
	sh.ok.Fprintf(sh.out, "imported %d moves\n", g.Size())
	if g.Over() {
		sh.reportResult()
	}
	return nil
}

func (sh *Shell) handleDiagram(kind string, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		dir := sh.exportDir
		if dir == "" {
			var err error
			if dir, err = storage.GetExportDir(); err != nil {
				return err
			}
		}
		path = filepath.Join(dir, fmt.Sprintf("position-%03d.%s", sh.game.Size(), kind))
	}

	opts := diagram.Options{Coordinates: true}
	if sh.game.ActiveColor() == board.Black {
		opts.Flip = true
	}
	if recs := sh.game.CoordMoves(); len(recs) > 0 {
		if m, err := board.ParseMove(recs[len(recs)-1]); err == nil {
			opts.Highlight = []board.Square{m.From(), m.To()}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if kind == "svg" {
		_, err = io.WriteString(f, diagram.SVG(sh.game.Current(), opts))
	} else {
		err = diagram.PNG(f, sh.game.Current(), opts)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	sh.ok.Fprintf(sh.out, "wrote %s\n", path)
	return nil
}

func (sh *Shell) handleSave() error {
	if sh.store == nil {
		return ErrNoStorage
	}
	id, err := sh.store.SaveGame(sh.gameID, sh.game, sh.tags)
	if err != nil {
		return err
	}
	sh.gameID = id
	sh.prefs.LastGame = id
	if err := sh.savePreferences(); err != nil {
		return err
	}
	sh.ok.Fprintf(sh.out, "saved %s\n", id)
	return nil
}

func (sh *Shell) handleLoad(args []string) error {
	if sh.store == nil {
		return ErrNoStorage
	}
	id := sh.prefs.LastGame
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		return fmt.Errorf("usage: load <id>")
	}

	rec, err := sh.store.LoadGame(id)
	if err != nil {
		return err
	}
	g, err := sh.store.RestoreGame(id, game.WithLogger(sh.logger))
	if err != nil {
		return err
	}
	sh.SetGame(g)
	sh.gameID = id
	for k, v := range map[string]string{"White": rec.White, "Black": rec.Black, "Event": rec.Event} {
		if v != "" {
			sh.tags[k] = v
		}
	}
	sh.ok.Fprintf(sh.out, "loaded %s (%d moves, %s)\n", id, g.Size(), g.Result())
	return nil
}

func (sh *Shell) handleList() error {
	if sh.store == nil {
		return ErrNoStorage
	}
	games, err := sh.store.ListGames()
	if err != nil {
		return err
	}
	if len(games) == 0 {
		sh.dim.Fprintln(sh.out, "no saved games")
		return nil
	}
	for _, rec := range games {
		fmt.Fprintf(sh.out, "%s  %-7s  %3d plies  %s\n", rec.ID, rec.Result, rec.Plies, rec.Updated.Format("2006-01-02 15:04"))
	}
	return nil
}

func (sh *Shell) handleFind() error {
	if sh.store == nil {
		return ErrNoStorage
	}
	ids, err := sh.store.GamesWithPosition(sh.game.Current())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		sh.dim.Fprintln(sh.out, "position not in archive")
		return nil
	}
	for _, id := range ids {
		sh.println(id)
	}
	return nil
}

func (sh *Shell) handleStats() error {
	if sh.store == nil {
		return ErrNoStorage
	}
	stats, err := sh.store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "games: %d  white: %d  black: %d  draws: %d\n",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws)
	fmt.Fprintf(sh.out, "white score: %.1f%%  average length: %.1f plies  longest: %d\n",
		stats.WhiteScore(), stats.AveragePlies(), stats.LongestGame)
	return nil
}

func (sh *Shell) reportResult() {
	sh.ok.Fprintf(sh.out, "%s %s\n", sh.game.Result(), sh.game.Status())
}

func (sh *Shell) savePreferences() error {
	if sh.store == nil {
		return nil
	}
	return sh.store.SavePreferences(sh.prefs)
}
