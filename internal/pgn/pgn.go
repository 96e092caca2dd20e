// Package pgn reads and writes games in Portable Game Notation.
package pgn

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// ErrInvalidPGN is wrapped by every parse failure.
var ErrInvalidPGN = errors.New("invalid PGN")

// Roster is the seven tag roster, in export order.
var Roster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// lineWidth is the maximum width of a movetext line.
const lineWidth = 78

// PGN is a single game record.
type PGN struct {
	Tags  map[string]string
	Moves []string
}

// New returns an empty record with the roster defaults.
func New() *PGN {
	return &PGN{Tags: map[string]string{"Date": "??", "Result": "*"}}
}

// Tag returns the value of a tag, "" if unset.
func (p *PGN) Tag(name string) string {
	return p.Tags[name]
}

// Result returns the Result tag, "*" if unset.
func (p *PGN) Result() string {
	if r := p.Tags["Result"]; r != "" {
		return r
	}
	return "*"
}

var (
	tagRe      = regexp.MustCompile(`^\[([A-Za-z0-9_]+)\s+"((?:[^"\\]|\\.)*)"\]\s*$`)
	commentRe  = regexp.MustCompile(`\{[^}]*\}|;[^\n]*`)
	moveNumRe  = regexp.MustCompile(`^\d+\.+`)
	nagRe      = regexp.MustCompile(`^\$\d+$`)
	resultToks = map[string]string{"1-0": "1-0", "0-1": "0-1", "1/2-1/2": "1/2-1/2", "1/2": "1/2-1/2", "*": "*"}
)

// Parse reads exactly one game.
func Parse(r io.Reader) (*PGN, error) {
	games, err := ParseAll(r)
	if err != nil {
		return nil, err
	}
	if len(games) != 1 {
		return nil, fmt.Errorf("%w: expected one game, found %d", ErrInvalidPGN, len(games))
	}
	return games[0], nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*PGN, error) {
	return Parse(strings.NewReader(s))
}

// ParseAll reads every game of a collection. Comments, NAGs and variations
// are dropped. A game without movetext is invalid.
func ParseAll(r io.Reader) ([]*PGN, error) {
	var (
		games   []*PGN
		cur     *PGN
		text    strings.Builder
		lineNum int
	)

	flush := func() error {
		if cur == nil {
			return nil
		}
		moves, result, err := parseMovetext(text.String())
		if err != nil {
			return err
		}
		if len(moves) == 0 && result == "" {
			return fmt.Errorf("%w: game without movetext near line %d", ErrInvalidPGN, lineNum)
		}
		cur.Moves = moves
		if result != "" {
			cur.Tags["Result"] = result
		}
		if r := cur.Tags["Result"]; resultToks[r] != "" {
			cur.Tags["Result"] = resultToks[r]
		}
		games = append(games, cur)
		cur = nil
		text.Reset()
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	inMovetext := false
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "%") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if inMovetext {
				if err := flush(); err != nil {
					return nil, err
				}
				inMovetext = false
			}
			m := tagRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("%w: malformed tag on line %d: %s", ErrInvalidPGN, lineNum, line)
			}
			if cur == nil {
				cur = &PGN{Tags: map[string]string{}}
			}
			cur.Tags[m[1]] = strings.ReplaceAll(m[2], `\"`, `"`)
			continue
		}
		if line == "" {
			continue
		}
		if cur == nil {
			cur = &PGN{Tags: map[string]string{}}
		}
		inMovetext = true
		text.WriteString(line)
		text.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: no game found", ErrInvalidPGN)
	}
	return games, nil
}

// parseMovetext extracts the SAN tokens and the terminating result.
func parseMovetext(text string) ([]string, string, error) {
	text = commentRe.ReplaceAllString(text, " ")
	text, err := stripVariations(text)
	if err != nil {
		return nil, "", err
	}

	var moves []string
	for _, tok := range strings.Fields(text) {
		if r, ok := resultToks[tok]; ok {
			return moves, r, nil
		}
		tok = moveNumRe.ReplaceAllString(tok, "")
		tok = strings.TrimRight(tok, "!?")
		if tok == "" || nagRe.MatchString(tok) {
			continue
		}
		moves = append(moves, tok)
	}
	return moves, "", nil
}

// stripVariations removes parenthesised, possibly nested, variations.
func stripVariations(text string) (string, error) {
	var sb strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth == 0 {
				return "", fmt.Errorf("%w: unbalanced variation", ErrInvalidPGN)
			}
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	if depth != 0 {
		return "", fmt.Errorf("%w: unbalanced variation", ErrInvalidPGN)
	}
	return sb.String(), nil
}

// String renders the record: the seven tag roster, any other tags in name
// order, a blank line and the movetext wrapped at 78 columns.
func (p *PGN) String() string {
	var sb strings.Builder
	for _, name := range Roster {
		value := p.Tags[name]
		if name == "Result" {
			value = p.Result()
		}
		writeTag(&sb, name, value)
	}
	var extra []string
	for name := range p.Tags {
		if !isRoster(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		writeTag(&sb, name, p.Tags[name])
	}
	sb.WriteByte('\n')

	number, side := p.start()
	tokens := make([]string, 0, len(p.Moves)*3/2+2)
	for i, m := range p.Moves {
		switch {
		case side == board.White:
			tokens = append(tokens, strconv.Itoa(number)+".")
		case i == 0:
			tokens = append(tokens, strconv.Itoa(number)+"...")
		}
		tokens = append(tokens, m)
		if side == board.Black {
			number++
		}
		side = side.Other()
	}
	tokens = append(tokens, p.Result())
	sb.WriteString(wrap(tokens, lineWidth))
	return sb.String()
}

// start returns the move number and side of the first move, taken from the
// FEN tag when there is one.
func (p *PGN) start() (int, board.Color) {
	if fen := p.Tags["FEN"]; fen != "" {
		if pos, err := board.ParseFEN(fen); err == nil {
			return pos.FullMoveNumber(), pos.SideToMove()
		}
	}
	return 1, board.White
}

func writeTag(sb *strings.Builder, name, value string) {
	fmt.Fprintf(sb, "[%s \"%s\"]\n", name, strings.ReplaceAll(value, `"`, `\"`))
}

func isRoster(name string) bool {
	for _, r := range Roster {
		if r == name {
			return true
		}
	}
	return false
}

// wrap joins tokens with spaces, breaking lines before width is exceeded.
// Every line, the last included, ends with a newline.
func wrap(tokens []string, width int) string {
	var sb strings.Builder
	lineLen := 0
	for _, tok := range tokens {
		switch {
		case lineLen == 0:
		case lineLen+1+len(tok) > width:
			sb.WriteByte('\n')
			lineLen = 0
		default:
			sb.WriteByte(' ')
			lineLen++
		}
		sb.WriteString(tok)
		lineLen += len(tok)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// FromGame builds a record from a game. Games started from a FEN position
// carry SetUp and FEN tags. Extra tags override the defaults.
func FromGame(g *game.Game, tags map[string]string) *PGN {
	p := New()
	p.Moves = g.Moves()
	p.Tags["Result"] = g.Result().String()
	if g.Origin() == game.SetByFEN {
		p.Tags["SetUp"] = "1"
		p.Tags["FEN"] = g.Position(0).ToFEN()
	}
	for k, v := range tags {
		p.Tags[k] = v
	}
	return p
}

// Replay plays the record's moves into a new game, starting from the FEN
// tag when present. A decisive or drawn Result tag not reached on the board
// is applied as a resignation or an agreed draw.
func (p *PGN) Replay(opts ...game.Option) (*game.Game, error) {
	g := game.New(opts...)
	if fen := p.Tags["FEN"]; fen != "" {
		if err := g.LoadFEN(fen); err != nil {
			return nil, err
		}
	}
	for i, m := range p.Moves {
		if _, err := g.Move(m); err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i/2+1, m, err)
		}
	}
	if g.Over() {
		return g, nil
	}

	var err error
	switch game.ParseResult(p.Result()) {
	case game.WhiteWon:
		err = g.Resign(board.Black)
	case game.BlackWon:
		err = g.Resign(board.White)
	case game.Draw:
		err = g.Draw()
	}
	return g, err
}
