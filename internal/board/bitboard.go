package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8 (Little-Endian Rank-File Mapping).
type Bitboard uint64

// File masks
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = 0x0202020202020202
	FileG Bitboard = 0x4040404040404040
	FileH Bitboard = 0x8080808080808080
)

// Rank masks
const (
	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = 0x000000000000FF00
	Rank7 Bitboard = 0x00FF000000000000
	Rank8 Bitboard = 0xFF00000000000000
)

// Special masks
const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	NotFileA  Bitboard = ^FileA
	NotFileH  Bitboard = ^FileH
	NotFileAB Bitboard = ^(FileA | FileB)
	NotFileGH Bitboard = ^(FileG | FileH)

	// LightSquares holds b1, d1, ..., a2, ... (h1 is light).
	LightSquares Bitboard = 0x55AA55AA55AA55AA
	DarkSquares  Bitboard = 0xAA55AA55AA55AA55
)

// Direction is one of the eight compass directions a ray can travel.
//
//	NW(7)  N(0)  NE(1)
//	    +7  +8  +9
//	W(6) -1  X  +1 E(2)
//	    -9  -8  -7
//	SW(5)  S(4)  SE(3)
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Orthogonal and diagonal direction sets used by the slider x-rays.
var (
	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{NorthEast, SouthEast, SouthWest, NorthWest}
)

// dirOffset holds the square delta of one step in each direction.
var dirOffset = [8]int{8, 9, 1, -7, -8, -9, -1, 7}

// avoidWrap masks out the squares a shift in each direction must never land
// on, so bits leaving file h do not reappear on file a and vice versa.
var avoidWrap = [8]Bitboard{
	0xFFFFFFFFFFFFFF00,
	0xFEFEFEFEFEFEFE00,
	0xFEFEFEFEFEFEFEFE,
	0x00FEFEFEFEFEFEFE,
	0x00FFFFFFFFFFFFFF,
	0x007F7F7F7F7F7F7F,
	0x7F7F7F7F7F7F7F7F,
	0x7F7F7F7F7F7F7F00,
}

// Offset returns the square delta of a single step in direction d.
func (d Direction) Offset() int {
	return dirOffset[d]
}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// SquareOf returns the index of the single set bit. The result is undefined
// unless b has exactly one bit set (e.g. a king bitboard).
func SquareOf(b Bitboard) Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Get returns b masked to the given square.
func (b Bitboard) Get(sq Square) Bitboard {
	return b & (1 << sq)
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// Toggle flips the bit at the given square.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b ^ (1 << sq)
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// HasOnlyOne reports whether exactly one bit is set.
func (b Bitboard) HasOnlyOne() bool {
	return b != 0 && b&(b-1) == 0
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Squares returns a slice of all squares that are set, lowest first.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// OnlyLightSquares reports whether every set bit lies on a light square.
func (b Bitboard) OnlyLightSquares() bool {
	return b&DarkSquares == 0
}

// OnlyDarkSquares reports whether every set bit lies on a dark square.
func (b Bitboard) OnlyDarkSquares() bool {
	return b&LightSquares == 0
}

// MirrorHorizontal flips the board left to right (file a <-> file h).
func (b Bitboard) MirrorHorizontal() Bitboard {
	const (
		k1 = 0x5555555555555555
		k2 = 0x3333333333333333
		k4 = 0x0F0F0F0F0F0F0F0F
	)
	b = ((b >> 1) & k1) | ((b & k1) << 1)
	b = ((b >> 2) & k2) | ((b & k2) << 2)
	b = ((b >> 4) & k4) | ((b & k4) << 4)
	return b
}

// MirrorVertical flips the board top to bottom (rank 1 <-> rank 8).
func (b Bitboard) MirrorVertical() Bitboard {
	return Bitboard(bits.ReverseBytes64(uint64(b)))
}

// Rotate shifts b left by s bits when s is positive and right by -s bits
// otherwise. Bits shifted off either end are dropped.
func (b Bitboard) Rotate(s int) Bitboard {
	if s > 0 {
		return b << uint(s)
	}
	return b >> uint(-s)
}

// ShiftOne moves every bit one step in direction d, dropping bits that would
// wrap around a board edge.
func ShiftOne(b Bitboard, d Direction) Bitboard {
	return b.Rotate(dirOffset[d]) & avoidWrap[d]
}

// OccludedFill extends every generator bit along direction d through the
// propagator squares (Kogge-Stone, shift doubling). The result contains the
// generators plus every propagator square reachable without crossing a
// non-propagator square.
func OccludedFill(gen, pro Bitboard, d Direction) Bitboard {
	r := dirOffset[d]
	pro &= avoidWrap[d]
	gen |= pro & gen.Rotate(r)
	pro &= pro.Rotate(r)
	gen |= pro & gen.Rotate(2*r)
	pro &= pro.Rotate(2 * r)
	gen |= pro & gen.Rotate(4*r)
	return gen
}

// SlidingAttacks returns the squares a slider attacks along direction d when
// it may travel through the propagator squares. The first square outside the
// propagator (the blocker) is included.
func SlidingAttacks(slider, propagator Bitboard, d Direction) Bitboard {
	return ShiftOne(OccludedFill(slider, propagator, d), d)
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
