//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"
	"image/color"

	"dotmatrix/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	ledPitch  = 24
	ledRadius = 9
	ledMargin = 12

	windowWidth  = 2*ledMargin + MatrixColumns*ledPitch
	windowHeight = 2*ledMargin + MatrixRows*ledPitch
)

var (
	boardColor = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	ledDimmed  = color.RGBA{R: 0x30, G: 0x08, B: 0x04, A: 0xFF}
)

// RunWindow starts a desktop window that shows the LED matrix and maps
// Space or the left mouse button to the push-button. It blocks until the
// window closes or the firmware returns.
func RunWindow(fw func(context.Context, HAL) error, opts HostOptions) error {
	h := newHostHAL(opts)
	defer h.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := &hostGame{
		h:    h,
		kbd:  newHostKeyboard(h.key),
		done: h.runFirmware(ctx, fw),
	}
	ebiten.SetWindowTitle("dotmatrix (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(windowWidth*3, windowHeight*3)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h    *hostHAL
	kbd  *hostKeyboard
	done <-chan error
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.done:
		if err != nil {
			return err
		}
		return ebiten.Termination
	default:
	}
	if g.kbd.poll() {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	screen.Fill(boardColor)
	cols, _ := g.h.panel.Snapshot()
	for col := 0; col < MatrixColumns; col++ {
		for row := 0; row < MatrixRows; row++ {
			c := ledDimmed
			if cols[col]&(1<<row) != 0 {
				c = ledOn
			}
			cx := float32(ledMargin + col*ledPitch + ledPitch/2)
			cy := float32(ledMargin + row*ledPitch + ledPitch/2)
			vector.DrawFilledCircle(screen, cx, cy, ledRadius, c, true)
		}
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}
