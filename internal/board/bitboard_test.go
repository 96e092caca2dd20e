package board

import "testing"

func TestSlidingAttacks(t *testing.T) {
	tests := []struct {
		name       string
		from       Square
		propagator Bitboard
		dir        Direction
		want       Bitboard
	}{
		{"north empty board", A1, Universe, North, FileA &^ SquareBB(A1)},
		{"east stops at edge", F1, Universe, East, SquareBB(G1) | SquareBB(H1)},
		{"no wrap east from h1", H1, Universe, East, Empty},
		{"no wrap west from a2", A2, Universe, West, Empty},
		{"blocked includes blocker", A1, ^SquareBB(A4), North, SquareBB(A2) | SquareBB(A3) | SquareBB(A4)},
		{"diagonal", C1, Universe, NorthEast, SquareBB(D2) | SquareBB(E3) | SquareBB(F4) | SquareBB(G5) | SquareBB(H6)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SlidingAttacks(SquareBB(tc.from), tc.propagator, tc.dir)
			if got != tc.want {
				t.Errorf("got\n%v\nwant\n%v", got, tc.want)
			}
		})
	}
}

func TestSliderXray(t *testing.T) {
	occupied := SquareBB(D4) | SquareBB(D7) | SquareBB(B4) | SquareBB(G4)
	got := RookXray(occupied, D4)
	want := SquareBB(D5) | SquareBB(D6) | SquareBB(D7) |
		SquareBB(D3) | SquareBB(D2) | SquareBB(D1) |
		SquareBB(C4) | SquareBB(B4) |
		SquareBB(E4) | SquareBB(F4) | SquareBB(G4)
	if got != want {
		t.Errorf("RookXray got\n%v\nwant\n%v", got, want)
	}

	if got := BishopXray(Empty, A1).PopCount(); got != 7 {
		t.Errorf("BishopXray(a1) on empty board covers %d squares, want 7", got)
	}
	if got := QueenXray(Empty, D4).PopCount(); got != 27 {
		t.Errorf("QueenXray(d4) on empty board covers %d squares, want 27", got)
	}
}

func TestLeaperTables(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want int
	}{
		{"king corner", KingXray(A1), 3},
		{"king edge", KingXray(E1), 5},
		{"king center", KingXray(E4), 8},
		{"knight corner", KnightXray(H8), 2},
		{"knight center", KnightXray(D4), 8},
		{"white pawn a-file", PawnAttackXray(White, A2), 1},
		{"black pawn center", PawnAttackXray(Black, E7), 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if n := tc.got.PopCount(); n != tc.want {
				t.Errorf("got %d squares, want %d", n, tc.want)
			}
		})
	}
}

func TestPawnXray(t *testing.T) {
	// Double push only from the home rank and only through an empty square.
	if got := PawnXray(White, SquareBB(E2), E2); got != SquareBB(E3)|SquareBB(E4) {
		t.Errorf("white e2 reach = %v", got)
	}
	if got := PawnXray(White, SquareBB(E2)|SquareBB(E3), E2); got != Empty {
		t.Errorf("blocked e2 reach = %v", got)
	}
	if got := PawnXray(Black, SquareBB(D6)|SquareBB(C5), D6); got != SquareBB(D5)|SquareBB(C5) {
		t.Errorf("black d6 reach = %v", got)
	}
}

func TestBitboardHelpers(t *testing.T) {
	if !(SquareBB(B1) | SquareBB(H1)).OnlyLightSquares() {
		t.Error("b1 and h1 should be light squares")
	}
	if !(SquareBB(A1) | SquareBB(H8)).OnlyDarkSquares() {
		t.Error("a1 and h8 should be dark squares")
	}
	if got := FileA.MirrorHorizontal(); got != FileH {
		t.Errorf("MirrorHorizontal(FileA) = %v", got)
	}
	if got := Rank1.MirrorVertical(); got != Rank8 {
		t.Errorf("MirrorVertical(Rank1) = %v", got)
	}
	if got := SquareOf(SquareBB(E4)); got != E4 {
		t.Errorf("SquareOf = %v, want e4", got)
	}
	if !SquareBB(C3).HasOnlyOne() || (SquareBB(C3) | SquareBB(C4)).HasOnlyOne() {
		t.Error("HasOnlyOne mismatch")
	}
	if got := SquareBB(A1).Rotate(8); got != SquareBB(A2) {
		t.Errorf("Rotate(8) = %v", got)
	}
	if got := SquareBB(A2).Rotate(-8); got != SquareBB(A1) {
		t.Errorf("Rotate(-8) = %v", got)
	}
}
