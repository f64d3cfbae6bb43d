package display

import (
	"image/color"

	"tinygo.org/x/drivers"

	"dotmatrix/fonts/font5x7"
)

var _ drivers.Displayer = (*glyphCanvas)(nil)

// glyphCanvas is a one-glyph drivers.Displayer that packs pixels into
// column bytes, bit 0 being the top row.
type glyphCanvas struct {
	cols [font5x7.MaxWidth]byte
}

func (c *glyphCanvas) clear() { c.cols = [font5x7.MaxWidth]byte{} }

func (c *glyphCanvas) Size() (x, y int16) { return font5x7.MaxWidth, Rows }

func (c *glyphCanvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || x >= font5x7.MaxWidth || y >= Rows || col.A == 0 {
		return
	}
	c.cols[x] |= 1 << uint(y)
}

func (c *glyphCanvas) Display() error { return nil }
