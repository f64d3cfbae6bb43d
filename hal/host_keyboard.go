//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard maps the window input onto the button pin.
type hostKeyboard struct {
	pin  *virtualPin
	held bool
}

func newHostKeyboard(pin *virtualPin) *hostKeyboard {
	return &hostKeyboard{pin: pin}
}

// poll updates the button pin and reports whether Escape was pressed.
func (k *hostKeyboard) poll() (quit bool) {
	held := ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsKeyPressed(ebiten.KeyEnter) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if held != k.held {
		k.held = held
		k.pin.Set(held)
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
