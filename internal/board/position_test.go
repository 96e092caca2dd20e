package board

import (
	"errors"
	"testing"
)

// checkConsistency verifies that placement, piece bitboards and aggregates
// describe the same pieces.
func checkConsistency(t *testing.T, p *Position) {
	t.Helper()
	var occ [2]Bitboard
	for sq := A1; sq <= H8; sq++ {
		piece := p.placement[sq]
		for c := White; c <= Black; c++ {
			for pt := Pawn; pt <= King; pt++ {
				want := piece == NewPiece(pt, c)
				if p.pieces[c][pt].IsSet(sq) != want {
					t.Fatalf("%v: bitboard %v %v disagrees with placement %q", sq, c, pt, piece)
				}
			}
		}
		if piece != NoPiece {
			occ[piece.Color()] = occ[piece.Color()].Set(sq)
		}
	}
	if occ != p.occupied || occ[White]|occ[Black] != p.all {
		t.Fatalf("aggregates out of sync")
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r2qk3/8/2n5/2b2pP1/8/8/3B4/4K2R w K f6 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 99 120",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			checkConsistency(t, pos)
			if got := pos.ToFEN(); got != fen {
				t.Errorf("ToFEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestParseFENRejects(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"garbage", "invalid"},
		{"missing clocks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"long rank", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1"},
		{"duplicate castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KK - 0 1"},
		{"ep wrong rank", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e4 0 1"},
		{"negative clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1"},
		{"zero move number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
		{"missing king", "8/6b1/8/8/8/n7/PP6/K7 w - - 1 3"},
		{"pawn on last rank", "P3k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"side not to move in check", "4k3/4R3/8/8/8/8/8/4K3 w - - 0 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("ParseFEN(%q) succeeded", tc.fen)
			}
			if !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("error %v does not wrap ErrInvalidFEN", err)
			}
		})
	}
}

func TestNewPosition(t *testing.T) {
	pos := NewPosition()
	checkConsistency(t, pos)

	if pos.SideToMove() != White {
		t.Error("white should move first")
	}
	if pos.CastlingRights() != AllCastling {
		t.Errorf("castling = %v, want KQkq", pos.CastlingRights())
	}
	if pos.KingSquare(White) != E1 || pos.KingSquare(Black) != E8 {
		t.Error("kings misplaced")
	}
	if pos.AllOccupied().PopCount() != 32 {
		t.Errorf("got %d pieces, want 32", pos.AllOccupied().PopCount())
	}

	piece, err := pos.PieceAtCoord("d8")
	if err != nil || piece != BlackQueen {
		t.Errorf("PieceAtCoord(d8) = %v, %v", piece, err)
	}
	if _, err := pos.PieceAtCoord("z9"); err == nil {
		t.Error("PieceAtCoord(z9) should fail")
	}
	if pos.PieceAt(E4) != NoPiece {
		t.Error("e4 should be empty")
	}
}

func TestKeyIgnoresClocks(t *testing.T) {
	a := MustParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	b := MustParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 12 40")
	c := MustParseFEN("4k3/8/8/8/8/8/8/4K2R w - - 0 1")

	if a.Key() != b.Key() || a.Hash() != b.Hash() {
		t.Error("clocks must not change the key or hash")
	}
	if a.Key() == c.Key() || a.Hash() == c.Hash() {
		t.Error("castling rights must change the key and hash")
	}
	if want := "4k3/8/8/8/8/8/8/4K2R w K -"; a.Key() != want {
		t.Errorf("Key() = %q, want %q", a.Key(), want)
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"e2e4", NewMove(E2, E4)},
		{"e7e8=Q", NewPromotion(E7, E8, Queen)},
		{"a2a1n", NewPromotion(A2, A1, Knight)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMove(tc.in)
			if err != nil {
				t.Fatalf("ParseMove: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
	for _, bad := range []string{"", "e2", "e2e9", "e7e8=K", "e7e8Qx"} {
		if _, err := ParseMove(bad); err == nil {
			t.Errorf("ParseMove(%q) should fail", bad)
		}
	}
}

func TestSquares(t *testing.T) {
	tests := []struct {
		name  string
		sq    Square
		index int
		light bool
	}{
		{"a1", A1, 0, false},
		{"h1", H1, 7, true},
		{"e4", E4, 28, true},
		{"d4", D4, 27, false},
		{"a8", A8, 56, true},
		{"h8", H8, 63, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.sq) != tt.index || tt.sq.String() != tt.name {
				t.Errorf("%s = %d (%s), want %d", tt.name, tt.sq, tt.sq, tt.index)
			}
			if tt.sq.IsLight() != tt.light {
				t.Errorf("IsLight() = %v", tt.sq.IsLight())
			}
			if SquareBB(tt.sq).OnlyLightSquares() != tt.light {
				t.Errorf("LightSquares mask disagrees with IsLight")
			}
			if sq, err := ParseSquare(tt.name); err != nil || sq != tt.sq {
				t.Errorf("ParseSquare(%q) = %v, %v", tt.name, sq, err)
			}
			if sq, err := SquareFromIndex(tt.index); err != nil || sq != tt.sq {
				t.Errorf("SquareFromIndex(%d) = %v, %v", tt.index, sq, err)
			}
		})
	}

	for _, bad := range []string{"", "e", "i1", "a9", "a0", "E4", "e44"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q): err = %v, want ErrInvalidSquare", bad, err)
		}
	}
	for _, bad := range []int{-1, 64} {
		if _, err := SquareFromIndex(bad); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("SquareFromIndex(%d): err = %v, want ErrInvalidSquare", bad, err)
		}
	}
	if NoSquare.String() != "-" || NoSquare.IsValid() {
		t.Errorf("NoSquare = %q valid=%v", NoSquare.String(), NoSquare.IsValid())
	}
}
