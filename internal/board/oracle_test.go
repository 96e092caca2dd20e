package board

import (
	"sort"
	"strings"
	"testing"

	"github.com/notnil/chess"
)

// TestAgainstNotnil replays games with github.com/notnil/chess and checks,
// ply by ply, that legal moves and terminal states agree.
func TestAgainstNotnil(t *testing.T) {
	games := []struct {
		name   string
		moves  string
		status chess.Method
	}{
		{"fool's mate", "f3 e5 g4 Qh4", chess.Checkmate},
		{"scholar's mate", "e4 e5 Bc4 Nc6 Qh5 Nf6 Qxf7", chess.Checkmate},
		{"ten move stalemate", "e3 a5 Qh5 Ra6 Qxa5 h5 h4 Rah6 Qxc7 f6 Qxd7 Kf7 Qxb7 Qd3 Qxb8 Qh7 Qxc8 Kg6 Qe6", chess.Stalemate},
		{"sicilian", "e4 c5 Nf3 d6 d4 cxd4 Qxd4 Nc6 Bb5 Bd7 Bxc6 Bxc6 Bg5 Nf6 Bxf6 gxf6 Nc3 e6 O-O-O Be7 Rhe1 Rg8 Qe3 Rxg2 Rg1 Rg6 Nd4 Qb6 h4 O-O-O h5 Rg5 Nd5 Bxd5 exd5 e5", chess.NoMethod},
		{"en passant", "e4 Nf6 e5 d5 exd6 exd6 d4 Be7 c4 O-O Nc3 a5 b4 axb4 a4 bxa3", chess.NoMethod},
		{"promotion", "h4 g5 hxg5 h5 g6 Nf6 g7 Rh7 gxf8=N Rh8 Nxd7", chess.NoMethod},
	}
	for _, tc := range games {
		t.Run(tc.name, func(t *testing.T) {
			game := chess.NewGame()
			check := func() {
				fen := game.Position().String()
				pos, err := ParseFEN(fen)
				if err != nil {
					t.Fatalf("ParseFEN(%q): %v", fen, err)
				}
				var got, want []string
				for _, m := range pos.LegalMoves() {
					got = append(got, uci(m))
				}
				for _, m := range game.ValidMoves() {
					want = append(want, m.String())
				}
				sort.Strings(got)
				sort.Strings(want)
				if strings.Join(got, " ") != strings.Join(want, " ") {
					t.Fatalf("%s:\ngot  %v\nwant %v", fen, got, want)
				}
				if status := game.Position().Status(); (status == chess.Checkmate) != pos.IsCheckmate() || (status == chess.Stalemate) != pos.IsStalemate() {
					t.Fatalf("%s: status %v, checkmate=%v stalemate=%v", fen, status, pos.IsCheckmate(), pos.IsStalemate())
				}
			}

			check()
			for _, san := range strings.Fields(tc.moves) {
				if err := game.MoveStr(san); err != nil {
					t.Fatalf("oracle rejected %q: %v", san, err)
				}
				check()
			}
			if got := game.Position().Status(); got != tc.status {
				t.Errorf("final status %v, want %v", got, tc.status)
			}
		})
	}
}
