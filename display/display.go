// Package display implements the column-memory drawing backend of the 5x7
// matrix.
//
// Content is written into a column memory larger than the matrix. The matrix
// shows a five column window of it starting at base, which Scroll moves by a
// configurable increment. Refresh multiplexes the window onto the LEDs one
// column at a time.
package display

import (
	"image/color"
	"sync"

	"dotmatrix/fonts/font5x7"
)

const (
	// Columns is the width of the matrix.
	Columns = 5
	// Rows is the height of the matrix.
	Rows = 7
	// MemorySize is the number of columns of display memory.
	MemorySize = 200

	// ImageEnd terminates an image passed to DisplayImage.
	ImageEnd = 0xFF

	maxIncrement = 0x0F
)

// Direction selects how the window moves through display memory.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Bidirectional
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Bidirectional:
		return "bidirectional"
	default:
		return "unknown"
	}
}

// Output drives one physical matrix column. The pattern has bit 0 as the top
// row; every other column is off while it is driven.
type Output interface {
	DriveColumn(col int, pattern uint8)
}

// Display is the drawing backend. It is safe for use from the main loop and
// from tick context at the same time.
type Display struct {
	mu sync.Mutex

	out Output

	memory  [MemorySize]byte
	base    int
	currCol int
	cursor  int

	inc          int
	dir          Direction
	backward     bool
	delay        uint8
	delayCounter uint8

	glyph glyphCanvas
}

// New returns a cleared display that drives out. A nil out is allowed; Refresh
// then only advances the column counter.
func New(out Output) *Display {
	return &Display{out: out}
}

// Clear moves the cursor and the window back to the start of memory and
// blanks the visible columns.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.base = 0
	d.cursor = 0
	for i := 0; i < Columns; i++ {
		d.memory[i] = 0
	}
}

// Refresh switches the matrix to the next column of the window.
func (d *Display) Refresh() {
	d.mu.Lock()
	d.currCol++
	if d.currCol >= Columns {
		d.currCol = 0
	}
	col := d.currCol
	pattern := d.memory[d.base+col]
	d.mu.Unlock()

	if d.out != nil {
		d.out.DriveColumn(col, pattern)
	}
}

// Scroll moves the window by one step and reports whether the end of the
// scrolling range was reached.
//
// At the end of the range the window holds still for the configured number of
// steps, then restarts from the left end (forward), from the right end
// (backward) or turns around (bidirectional).
func (d *Display) Scroll() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.base + d.inc
	if d.backward {
		next = d.base - d.inc
	}
	if next >= 0 && next+Columns <= d.cursor {
		d.base = next
		return false
	}

	if d.delayCounter > 0 {
		d.delayCounter--
		return true
	}
	d.delayCounter = d.delay
	switch {
	case d.dir == Bidirectional:
		d.backward = !d.backward
	case d.backward:
		d.base = d.cursor - Columns
		if d.base < 0 {
			d.base = 0
		}
	default:
		d.base = 0
	}
	return true
}

// SetScrolling sets the scroll increment (0..15, 0 stops scrolling), the
// direction and the number of steps to pause at the end of the range.
//
// Unknown directions scroll forward.
func (d *Display) SetScrolling(inc uint8, dir Direction, delay uint8) {
	if dir > Bidirectional {
		dir = Forward
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.inc = int(inc & maxIncrement)
	d.dir = dir
	d.backward = dir == Backward
	d.delay = delay
	if dir == Backward {
		d.delayCounter = 0
	} else {
		d.delayCounter = delay
	}
}

// PrintByte appends one raw column at the cursor. It is dropped when display
// memory is full.
func (d *Display) PrintByte(b byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.putLocked(b)
}

// PrintChar renders a character at the cursor. Latin-1 umlauts and sharp s
// are mapped to their extended glyphs; codes without a glyph are ignored.
func (d *Display) PrintChar(code byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.glyph.clear()
	g := font5x7.Font.GetGlyph(rune(code))
	g.Draw(&d.glyph, 0, font5x7.Height-1, color.RGBA{R: 0xFF, A: 0xFF})
	for _, b := range d.glyph.cols[:g.Info().XAdvance] {
		d.putLocked(b)
	}
}

// DisplayImage copies columns of img to the cursor until ImageEnd, the end of
// img or the end of display memory.
func (d *Display) DisplayImage(img []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, b := range img {
		if b == ImageEnd || d.cursor >= MemorySize {
			return
		}
		d.putLocked(b)
	}
}

func (d *Display) putLocked(b byte) {
	if d.cursor >= MemorySize {
		return
	}
	d.memory[d.cursor] = b
	d.cursor++
}

// Window returns the columns currently visible.
func (d *Display) Window() [Columns]byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	var w [Columns]byte
	copy(w[:], d.memory[d.base:d.base+Columns])
	return w
}

// Cursor returns the number of columns written since the last Clear.
func (d *Display) Cursor() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Content returns a copy of the written columns.
func (d *Display) Content() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), d.memory[:d.cursor]...)
}
