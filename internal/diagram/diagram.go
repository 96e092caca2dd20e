// Package diagram draws board diagrams of a position as SVG or PNG.
package diagram

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

// Options controls the look of a diagram. The zero value draws a 360 pixel
// board from White's side with coordinates off.
type Options struct {
	SquareSize  int
	Flip        bool // Black at the bottom
	Coordinates bool
	Highlight   []board.Square
	Light       string
	Dark        string
	Marked      string
}

const (
	defaultSquareSize = 45
	defaultLight      = "#f0d9b5"
	defaultDark       = "#b58863"
	defaultMarked     = "#cdd26a"
	checkColor        = "#e06c5a"
	whitePieceFill    = "#fafafa"
	blackPieceFill    = "#2b2b2b"
)

func (o Options) withDefaults() Options {
	if o.SquareSize <= 0 {
		o.SquareSize = defaultSquareSize
	}
	if o.Light == "" {
		o.Light = defaultLight
	}
	if o.Dark == "" {
		o.Dark = defaultDark
	}
	if o.Marked == "" {
		o.Marked = defaultMarked
	}
	return o
}

// origin returns the top-left pixel of sq.
func (o Options) origin(sq board.Square) (x, y int) {
	col, row := sq.File(), 7-sq.Rank()
	if o.Flip {
		col, row = 7-col, 7-row
	}
	return col * o.SquareSize, row * o.SquareSize
}

// label is a piece of text centred on (X, Y).
type label struct {
	Text  string
	X, Y  float64
	Size  float64
	Color string
}

// layout returns the shapes of the diagram as SVG elements, without text,
// and the labels to draw over them.
func layout(pos *board.Position, o Options) (shapes string, labels []label) {
	size := o.SquareSize
	s := float64(size)
	marked := make(map[board.Square]bool, len(o.Highlight))
	for _, sq := range o.Highlight {
		marked[sq] = true
	}
	checked := board.NoSquare
	if pos.InCheck() {
		checked = pos.KingSquare(pos.SideToMove())
	}

	var sb strings.Builder
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := o.origin(sq)
		fill := o.Dark
		if sq.IsLight() {
			fill = o.Light
		}
		switch {
		case sq == checked:
			fill = checkColor
		case marked[sq]:
			fill = o.Marked
		}
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n", x, y, size, size, fill)

		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		cx, cy := float64(x)+s/2, float64(y)+s/2
		disc, ink, rim := whitePieceFill, blackPieceFill, blackPieceFill
		if piece.Color() == board.Black {
			disc, ink, rim = blackPieceFill, whitePieceFill, whitePieceFill
		}
		fmt.Fprintf(&sb, `<circle cx="%g" cy="%g" r="%g" fill="%s" stroke="%s" stroke-width="%g"/>`+"\n",
			cx, cy, s*0.4, disc, rim, s/30)
		labels = append(labels, label{
			Text:  string(piece.Type().Letter()),
			X:     cx,
			Y:     cy,
			Size:  s * 0.5,
			Color: ink,
		})
	}

	if o.Coordinates {
		small := s / 5
		for i := 0; i < 8; i++ {
			file := board.NewSquare(i, 0)
			rank := board.NewSquare(0, i)
			if o.Flip {
				file = board.NewSquare(i, 7)
				rank = board.NewSquare(7, i)
			}
			fx, fy := o.origin(file)
			rx, ry := o.origin(rank)
			labels = append(labels,
				label{Text: string(rune('a' + i)), X: float64(fx) + s - small*0.6, Y: float64(fy) + s - small*0.7, Size: small, Color: o.coordColor(file)},
				label{Text: string(rune('1' + i)), X: float64(rx) + small*0.6, Y: float64(ry) + small*0.7, Size: small, Color: o.coordColor(rank)},
			)
		}
	}
	return sb.String(), labels
}

// coordColor returns the color of the opposite square shade, so that a
// coordinate stays legible on the square it is drawn on.
func (o Options) coordColor(sq board.Square) string {
	if sq.IsLight() {
		return o.Dark
	}
	return o.Light
}

func header(width int) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, width, width, width)
}

// SVG returns a standalone SVG document of the position.
func SVG(pos *board.Position, opts Options) string {
	o := opts.withDefaults()
	shapes, labels := layout(pos, o)

	var sb strings.Builder
	sb.WriteString(header(8 * o.SquareSize))
	sb.WriteString(shapes)
	for _, l := range labels {
		fmt.Fprintf(&sb, `<text x="%g" y="%g" font-family="sans-serif" font-weight="bold" font-size="%g" text-anchor="middle" dominant-baseline="central" fill="%s">%s</text>`+"\n",
			l.X, l.Y, l.Size, l.Color, l.Text)
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// parseHex converts "#rrggbb" to an opaque color. Malformed input is black.
func parseHex(s string) color.RGBA {
	c := color.RGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return c
	}
	c.R, c.G, c.B = r, g, b
	return c
}
