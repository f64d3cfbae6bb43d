package hal

import (
	"image/color"
	"strings"
	"sync"

	"tinygo.org/x/drivers"
)

var (
	ledOn  = color.RGBA{R: 0xFF, G: 0x30, B: 0x10, A: 0xFF}
	ledOff = color.RGBA{}
)

// ledPanel is the simulated LED matrix. A column keeps the pattern it was
// last driven with, the way the eye keeps a multiplexed column lit.
type ledPanel struct {
	mu      sync.Mutex
	cols    [MatrixColumns]uint8
	version uint64
}

var (
	_ drivers.Displayer = (*ledPanel)(nil)
	_ Matrix            = (*ledPanel)(nil)
)

func newLEDPanel() *ledPanel {
	return &ledPanel{}
}

func (p *ledPanel) DriveColumn(col int, pattern uint8) {
	if col < 0 || col >= MatrixColumns {
		return
	}
	for row := 0; row < MatrixRows; row++ {
		c := ledOff
		if pattern&(1<<row) != 0 {
			c = ledOn
		}
		p.SetPixel(int16(col), int16(row), c)
	}
	_ = p.Display()
}

func (p *ledPanel) Size() (x, y int16) { return MatrixColumns, MatrixRows }

func (p *ledPanel) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= MatrixColumns || y >= MatrixRows {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if c.A != 0 {
		p.cols[x] |= 1 << uint(y)
	} else {
		p.cols[x] &^= 1 << uint(y)
	}
}

func (p *ledPanel) Display() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.version++
	return nil
}

// Snapshot returns the lit columns and a counter that changes on every
// Display.
func (p *ledPanel) Snapshot() ([MatrixColumns]uint8, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cols, p.version
}

// renderPanel draws cols as text, one line per row.
func renderPanel(cols [MatrixColumns]uint8) string {
	var sb strings.Builder
	for row := 0; row < MatrixRows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < MatrixColumns; col++ {
			if cols[col]&(1<<row) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
