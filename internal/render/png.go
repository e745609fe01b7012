package render

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"ansiedit/internal/model"
)

// Pixel size of one character cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

func drawPNG(c *model.Canvas) (*gg.Context, error) {
	if c.Width() <= 0 || c.Height() <= 0 {
		return nil, fmt.Errorf("nothing to export")
	}
	dc := gg.NewContext(c.Width()*CellWidth, c.Height()*CellHeight)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	setColor := func(i uint32) {
		col, err := c.Palette.Color(int(i))
		if err != nil {
			col = model.Color{}
		}
		dc.SetRGB255(int(col.R), int(col.G), int(col.B))
	}

	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			cell := c.CompositeCell(model.Position{X: x, Y: y})
			px := float64(x * CellWidth)
			py := float64(y * CellHeight)

			setColor(cell.Attr.Background)
			dc.DrawRectangle(px, py, CellWidth, CellHeight)
			dc.Fill()

			g := Glyph(cell.Ch)
			if g == ' ' {
				continue
			}
			setColor(cell.Attr.Foreground)
			dc.DrawStringAnchored(string(g), px+CellWidth/2, py+CellHeight/2, 0.5, 0.35)
			if cell.Attr.IsUnderline() {
				dc.DrawLine(px, py+CellHeight-1.5, px+CellWidth, py+CellHeight-1.5)
				dc.Stroke()
			}
		}
	}
	return dc, nil
}

// WritePNG encodes the composite canvas as a PNG image.
func WritePNG(c *model.Canvas, w io.Writer) error {
	dc, err := drawPNG(c)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG writes the composite canvas to a PNG file.
func SavePNG(c *model.Canvas, filename string) error {
	dc, err := drawPNG(c)
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}
