// Package font5x7 is the proportional 5x7 dot-matrix font.
//
// Glyphs are stored column-major: one byte per column, bit 0 is the top row.
// Blank columns on either side of a glyph are trimmed, so the advance width
// of a glyph is its inked width.
package font5x7

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	// First is the lowest glyph code.
	First = 0x20
	// Last is the highest glyph code. glyphData holds Last-First+1 glyphs.
	Last = EuroSymbol

	Height   = 7
	MaxWidth = 5

	spaceWidth = 3
)

// Extended glyph codes above the ASCII range.
const (
	Arrow      = 127
	Heart      = 128
	Note       = 129
	SadFace    = 130
	HappyFace  = 131
	LowerAUml  = 132
	UpperAUml  = 133
	LowerOUml  = 134
	UpperOUml  = 135
	LowerUUml  = 136
	UpperUUml  = 137
	SharpS     = 138
	Degree     = 139
	EuroSymbol = 140
)

// Font implements tinyfont.Fonter.
//
// Concurrent access is not safe due to internal glyph reuse.
var Font tinyfont.Fonter = &font5x7{}

type font5x7 struct {
	g glyph
}

type glyph struct {
	r    rune
	cols []byte
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	for col, bits := range g.cols {
		for row := 0; row < Height; row++ {
			if bits&(1<<row) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(Height-1-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	w := uint8(len(g.cols))
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    w,
		Height:   Height,
		XAdvance: w,
		XOffset:  0,
		YOffset:  -(Height - 1),
	}
}

func (f *font5x7) GetYAdvance() uint8 { return Height + 1 }

func (f *font5x7) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	f.g.cols = nil
	if code, ok := Code(r); ok {
		f.g.cols = Columns(code)
	}
	return &f.g
}

// Columns returns the column bitmap of a glyph code, or nil when the code is
// outside the font. The returned slice must not be modified.
func Columns(code byte) []byte {
	if int(code) < First || int(code) > Last {
		return nil
	}
	sp := spans[int(code)-First]
	return glyphData[sp.start:sp.end]
}

// Code maps a rune to a glyph code. Printable ASCII maps to itself, the
// German letters map to their extended glyphs, and runes in the extended
// range are taken as glyph codes.
func Code(r rune) (byte, bool) {
	switch r {
	case 'ß':
		return SharpS, true
	case 'Ä':
		return UpperAUml, true
	case 'Ö':
		return UpperOUml, true
	case 'Ü':
		return UpperUUml, true
	case 'ä':
		return LowerAUml, true
	case 'ö':
		return LowerOUml, true
	case 'ü':
		return LowerUUml, true
	case '°':
		return Degree, true
	case '€':
		return EuroSymbol, true
	}
	if r >= First && r <= rune(Last) {
		return byte(r), true
	}
	return 0, false
}

type span struct {
	start, end int
}

var spans [len(glyphData) / MaxWidth]span

func init() {
	for i := range spans {
		base := i * MaxWidth
		start, end := base, base+MaxWidth
		for start < end && glyphData[start] == 0 {
			start++
		}
		for end > start && glyphData[end-1] == 0 {
			end--
		}
		if start == end {
			// blank glyph (space): keep a fixed gap
			start, end = base, base+spaceWidth
		}
		spans[i] = span{start: start, end: end}
	}
}
