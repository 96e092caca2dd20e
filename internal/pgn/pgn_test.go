package pgn

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

const sicilian = `1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Qxd4 Nc6 5. Bb5 Bd7 6. Bxc6 Bxc6 7. Bg5 Nf6
8. Bxf6 gxf6 9. Nc3 e6 10. O-O-O Be7 11. Rhe1 Rg8 12. Qe3 Rxg2 13. Rg1 Rg6 14.
Nd4 Qb6 15. h4 O-O-O 16. h5 Rg5 17. Nd5 Bxd5 18. exd5 e5 19. Qh3+ Kb8 20. Nf5
Bf8 21. Rxg5 fxg5 22. Ne3 Qb4 23. c4 g4 24. Qxg4 Bh6 25. Kb1 Rc8 26. Rc1 Qd2
27. Qf5 Bf4 28. Qc2 Qxc2+ 29. Rxc2 Rg8 30. b4 Rg5 31. c5 e4 32. c6 Rxh5 33.
Rc4 f5 34. b5 Rg5 35. Rc3 Be5 36. Rc1 Bd4 37. Nc4 Bc5 38. Ne5 dxe5 39. Rxc5
Rg6 40. a4 Rd6 41. a5 b6 42. axb6 axb6 43. Rc2 Rxd5 44. Rb2 h5 45. Ka2 h4 46.
Ka3 h3 47. Ka4 Rd1 *
`

const caruana = `[Event "70th ch-ITA"]
[Site "Siena ITA"]
[Round "10"]
[Date "2010.12.3"]
[White "Caruana, Fabiano"]
[Black "Godena, Michele"]
[Result "1-0"]
1.d4 d5 2.c4 dxc4 3.e4 e5 4.Nf3 Bb4+ 5.Nc3 exd4 6.Nxd4 Ne7 7.Bf4 Bxc3+ 8.bxc3 Ng6 9.Bg3 Qe7 10.Bxc4 Qxe4+ 11.Qe2 Qxe2+ 12.Bxe2 Na6 13.Rb1 O-O 14.O-O Re8 15.Rfe1 Nc5 16.Bxc7 Bd7 17.Bf3 Rxe1+ 18.Rxe1 Rc8 19.Bg3 b6 20.h4 Ne6 21.h5 Ne7 22.Be5 Nc6 23.Nxc6 Bxc6 24.Bg4 Re8 25.Bg3 g6 26.h6 f5 27.Bd1 f4 28.Bh4 Kf8 29.Re5 g5 30.Bh5 Rc8 31.Bxg5 Nxg5 32.Rxg5 Bd7 33.Rg7 Rc5 34.Bf3 Bf5 35.Rxa7 Rxc3 36.Bd5 Bg6 37.Ra4 Rc1+ 38.Kh2 Rc5 39.Rxf4+ Ke7 40.Bf3 Ra5 41.Rb4 b5 42.Bd5 Kf6 43.f4 Bf5 44.Bc6 Bd3 45.Rd4 Ra3 46.Bd5 Bb1 47.Rd1 Bd3 48.Bb3 Bc4 49.Bc2 Ke7 50.Bf5 Rxa2 51.Rd7+ Kf8 52.Rxh7 Bd5 53.Rd7 1-0
`

const ruyLopez = `1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 {This opening is called the Ruy Lopez.}
4. Ba4 Nf6 5. O-O Be7 6. Re1 b5 7. Bb3 d6 8. c3 O-O 9. h3 Nb8 10. d4 Nbd7
11. c4 c6 12. cxb5 axb5 13. Nc3 Bb7 14. Bg5 b4 15. Nb1 h6 16. Bh4 c5 17. dxe5
Nxe4 18. Bxe7 Qxe7 19. exd6 Qf6 20. Nbd2 Nxd6 21. Nc4 Nxc4 22. Bxc4 Nb6
23. Ne5 Rae8 24. Bxf7+ Rxf7 25. Nxf7 Rxe1+ 26. Qxe1 Kxf7 27. Qe3 Qg5 28. Qxg5
hxg5 29. b3 Ke6 30. a3 Kd6 31. axb4 cxb4 32. Ra5 Nd5 33. f3 Bc8 34. Kf2 Bf5
35. Ra7 g6 36. Ra6+ Kc5 37. Ke1 Nf4 38. g3 Nxh3 39. Kd2 Kb5 40. Rd6 Kc5 41. Ra6
Nf2 42. g4 Bd3 43. Re6 1/2-1/2
`

func TestExportWrapsMovetext(t *testing.T) {
	p, err := ParseString(sicilian)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	g, err := p.Replay()
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !reflect.DeepEqual(g.Moves(), p.Moves) {
		t.Fatalf("replayed moves differ:\n got %v\nwant %v", g.Moves(), p.Moves)
	}

	want := `[Event ""]
[Site ""]
[Date "??"]
[Round ""]
[White ""]
[Black ""]
[Result "*"]

` + sicilian
	if got := FromGame(g, nil).String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseTags(t *testing.T) {
	p, err := ParseString(caruana)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	tags := map[string]string{
		"Event":  "70th ch-ITA",
		"Site":   "Siena ITA",
		"Round":  "10",
		"Date":   "2010.12.3",
		"White":  "Caruana, Fabiano",
		"Black":  "Godena, Michele",
		"Result": "1-0",
	}
	for name, want := range tags {
		if got := p.Tag(name); got != want {
			t.Errorf("Tag(%s) = %q, want %q", name, got, want)
		}
	}
	if len(p.Moves) != 105 {
		t.Errorf("len(Moves) = %d, want 105", len(p.Moves))
	}
	if last := p.Moves[len(p.Moves)-1]; last != "Rd7" {
		t.Errorf("last move = %q, want Rd7", last)
	}

	g, err := p.Replay()
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if g.Result() != game.WhiteWon {
		t.Errorf("Result() = %v, want 1-0", g.Result())
	}
}

func TestParseWithoutTags(t *testing.T) {
	p, err := ParseString(ruyLopez)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	for _, name := range []string{"Event", "Site", "Round", "Date", "White", "Black"} {
		if got := p.Tag(name); got != "" {
			t.Errorf("Tag(%s) = %q, want empty", name, got)
		}
	}
	if p.Result() != "1/2-1/2" {
		t.Errorf("Result() = %q, want 1/2-1/2", p.Result())
	}
	if last := p.Moves[len(p.Moves)-1]; last != "Re6" {
		t.Errorf("last move = %q, want Re6", last)
	}
	for _, m := range p.Moves {
		if strings.ContainsAny(m, "{}") {
			t.Fatalf("comment leaked into moves: %q", m)
		}
	}

	g, err := p.Replay()
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if g.Result() != game.Draw {
		t.Errorf("Result() = %v, want 1/2-1/2", g.Result())
	}
}

func TestParseMovetextNoise(t *testing.T) {
	text := `[Event "noise"]

1. e4 $1 e5 (1... c5 2. Nf3 (2. c3)) 2. Nf3!? ; a line comment
Nc6 3... a6?! *
`
	p, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	want := []string{"e4", "e5", "Nf3", "Nc6", "a6"}
	if !reflect.DeepEqual(p.Moves, want) {
		t.Errorf("Moves = %v, want %v", p.Moves, want)
	}
}

func TestParseAll(t *testing.T) {
	text := caruana + "\n" + `[Event "second"]
[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1
`
	games, err := ParseAll(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}
	if games[1].Tag("Event") != "second" || len(games[1].Moves) != 4 {
		t.Errorf("second game = %+v", games[1])
	}

	g, err := games[1].Replay()
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if g.Result() != game.BlackWon || g.Status() != game.StatusBlackWon {
		t.Errorf("Result() = %v Status() = %v, want checkmate by black", g.Result(), g.Status())
	}

	if _, err := ParseString(text); !errors.Is(err, ErrInvalidPGN) {
		t.Errorf("ParseString of two games: err = %v, want ErrInvalidPGN", err)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"tags only", "[Event \"x\"]\n[Site \"y\"]\n"},
		{"malformed tag", "[Event x]\n\n1. e4 *\n"},
		{"unclosed tag", "[Event \"x\"\n\n1. e4 *\n"},
		{"unbalanced variation", "1. e4 (1. d4 e5\n"},
		{"stray paren", "1. e4 ) e5 *\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.text); !errors.Is(err, ErrInvalidPGN) {
				t.Errorf("err = %v, want ErrInvalidPGN", err)
			}
		})
	}
}

func TestReplayIllegal(t *testing.T) {
	p, err := ParseString("1. e4 e5 2. Ke3 *\n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if _, err := p.Replay(); !errors.Is(err, game.ErrIllegalMove) {
		t.Errorf("Replay: err = %v, want ErrIllegalMove", err)
	}
}

func TestFromFENGame(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/4P3/4K3 b - - 0 1"
	g, err := game.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if err := g.MoveAll("Kd7", "e4"); err != nil {
		t.Fatalf("MoveAll: %v", err)
	}

	p := FromGame(g, map[string]string{"White": "me"})
	out := p.String()
	for _, want := range []string{`[SetUp "1"]`, `[FEN "` + fen + `"]`, `[White "me"]`, "1... Kd7 2. e4 *\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}

	back, err := ParseString(out)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	replayed, err := back.Replay()
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if replayed.Current().Key() != g.Current().Key() {
		t.Errorf("replayed position %q, want %q", replayed.Current().Key(), g.Current().Key())
	}
	if got := back.FigurineMoves(); !reflect.DeepEqual(got, []string{"♚d7", "e4"}) {
		t.Errorf("FigurineMoves() = %v", got)
	}
}

func TestToFigurine(t *testing.T) {
	tests := []struct {
		san   string
		color board.Color
		want  string
	}{
		{"Qf7#", board.White, "♕f7#"},
		{"Qf7#", board.Black, "♛f7#"},
		{"Nbd2", board.White, "♘bd2"},
		{"Bxb5", board.Black, "♝xb5"},
		{"exd8=Q+", board.White, "exd8=♕+"},
		{"O-O-O", board.Black, "O-O-O"},
		{"e4", board.White, "e4"},
	}
	for _, tt := range tests {
		t.Run(tt.san, func(t *testing.T) {
			if got := ToFigurine(tt.san, tt.color); got != tt.want {
				t.Errorf("ToFigurine(%q, %v) = %q, want %q", tt.san, tt.color, got, tt.want)
			}
		})
	}
}
