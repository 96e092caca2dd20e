package diagram

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chessrules/internal/board"
)

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// face returns the bold Go font at the given pixel size.
func face(size float64) (font.Face, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	if boldErr != nil {
		return nil, fmt.Errorf("load font: %w", boldErr)
	}

	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(boldFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	faces[size] = f
	return f, nil
}

// Image rasterises the position. Squares and discs go through the SVG
// renderer; letters are drawn afterwards with the Go bold font.
func Image(pos *board.Position, opts Options) (*image.RGBA, error) {
	o := opts.withDefaults()
	shapes, labels := layout(pos, o)
	width := 8 * o.SquareSize

	icon, err := oksvg.ReadIconStream(strings.NewReader(header(width) + shapes + "</svg>\n"))
	if err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(width))

	rgba := image.NewRGBA(image.Rect(0, 0, width, width))
	scanner := rasterx.NewScannerGV(width, width, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(width, width, scanner)
	icon.Draw(raster, 1.0)

	for _, l := range labels {
		if err := drawLabel(rgba, l); err != nil {
			return nil, err
		}
	}
	return rgba, nil
}

// drawLabel centres the text horizontally on X and its capitals vertically
// on Y.
func drawLabel(dst *image.RGBA, l label) error {
	f, err := face(l.Size)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(parseHex(l.Color)),
		Face: f,
	}
	w := d.MeasureString(l.Text)
	capHeight := f.Metrics().CapHeight
	x := fixed.Int26_6(l.X*64) - w/2
	y := fixed.Int26_6(l.Y*64) + capHeight/2
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(l.Text)
	return nil
}

// PNG writes the rasterised position to w.
func PNG(w io.Writer, pos *board.Position, opts Options) error {
	img, err := Image(pos, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
