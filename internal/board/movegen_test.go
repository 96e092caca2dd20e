package board

import (
	"reflect"
	"sort"
	"testing"
)

func TestGenerateMoves(t *testing.T) {
	tests := []struct {
		fen  string
		from Square
		want []string
	}{
		{"r2qk3/8/2n5/8/8/8/p2B4/4K2R w K - 0 1", E1, []string{"Kd1", "Ke2", "Kf2", "Kf1", "O-O"}},
		{"r2qk3/8/2n5/8/8/8/p2B4/4K2R w - - 0 1", E1, []string{"Kd1", "Ke2", "Kf2", "Kf1"}},
		{"r2qk3/8/2n5/2b5/8/8/p2B4/4K2R w K - 0 1", E1, []string{"Kd1", "Ke2", "Kf1"}},
		{"r2qk3/8/2n5/2b5/8/8/p2B4/4K2R b K - 0 1", A2, []string{"a1=Q", "a1=R", "a1=B", "a1=N"}},
		{"r2qk3/8/2n1n3/2b5/8/8/p2B4/4K2R b K - 0 1", E6, []string{"Nf8", "Ng7", "Ng5", "Nf4", "Ned4", "Nc7"}},
		{"r2qk3/8/2n5/2b2pP1/8/8/3B4/4K2R w K f6 0 1", G5, []string{"gxf6ep", "g6"}},
		{"1B1k4/r3q3/2n1n3/2b2pP1/8/1n6/3B4/4K2R b K - 0 1", C6, []string{"Nxb8", "Ne5", "Ncd4", "Nb4", "Nca5"}},
		{"1B1k4/r3q3/2n1n3/2b2pP1/8/8/2nB4/3K3R b - - 0 1", C6, []string{"Nxb8", "Ne5", "Nc6d4", "N6b4", "Na5"}},
		{"1B1k4/r3q3/2n1n2P/2b5/5p2/3p1RP1/3B4/3K4 w - - 0 1", F3, []string{"Rxd3", "Re3", "Rxf4", "Rf2", "Rf1"}},
		{"k7/1Q6/2P5/8/8/8/8/3K4 b - - 0 1", A8, nil},
		{"k7/6P1/8/8/8/3r4/3Q4/3K4 w - - 0 1", D2, []string{"Qxd3"}},
		{"rnbqkbnr/1ppppppp/8/8/pP2P3/P7/2PP1PPP/RNBQKBNR w KQkq - 0 3", C2, []string{"c3", "c4"}},
		{StartFEN, E7, nil},
		{StartFEN, E4, nil},
	}
	for _, tc := range tests {
		t.Run(tc.fen+" "+tc.from.String(), func(t *testing.T) {
			got := MustParseFEN(tc.fen).GenerateMoves(tc.from)
			want := append([]string(nil), tc.want...)
			sort.Strings(got)
			sort.Strings(want)
			if len(got) == 0 && len(want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestGenerateAllMoves(t *testing.T) {
	want := []string{"Na3", "Nc3", "Nf3", "Nh3", "a3", "a4", "b3", "b4", "c3", "c4", "d3", "d4", "e3", "e4", "f3", "f4", "g3", "g4", "h3", "h4"}
	if got := NewPosition().GenerateAllMoves(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v\nwant %v", got, want)
	}
}

func TestGenerateMovesAfterSequence(t *testing.T) {
	pos := NewPosition()
	for _, s := range []string{"f2f4", "d7d6", "d2d3", "h7h5", "b1d2", "e7e5", "f4f5", "a7a5", "c2c3", "d8f6", "d2c4", "b7b6", "c4d2", "a8a6", "d2f3", "a6a7", "f3e5", "b6b5", "h2h4"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		next, _, err := pos.Play(m)
		if err != nil {
			t.Fatalf("Play(%q): %v", s, err)
		}
		checkConsistency(t, next)
		pos = next
	}
	if got := pos.GenerateMoves(A5); !reflect.DeepEqual(got, []string{"a4"}) {
		t.Errorf("GenerateMoves(a5) = %v, want [a4]", got)
	}
}
