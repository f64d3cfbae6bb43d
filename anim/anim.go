// Package anim holds the built-in animations.
//
// An animation is a run of raw display columns terminated by End. Frames are
// display.Columns wide so that a scroll increment of 5 steps frame by frame.
package anim

// End terminates an animation image.
const End = 0xFF

// Table is an ordered set of animations, addressed by a letter in messages:
// 'A' is index 0.
type Table [][]byte

// Image returns animation i, or false when the table has no such entry.
func (t Table) Image(i int) ([]byte, bool) {
	if i < 0 || i >= len(t) {
		return nil, false
	}
	return t[i], true
}

// Letter returns the image addressed by letter, 'A' being the first entry.
func (t Table) Letter(letter byte) ([]byte, bool) {
	return t.Image(int(letter) - 'A')
}

var (
	heartBeat = []byte{
		0x0C, 0x1E, 0x3C, 0x1E, 0x0C,
		0x00, 0x0C, 0x18, 0x0C, 0x00,
		0x0C, 0x1E, 0x3C, 0x1E, 0x0C,
		0x00, 0x0C, 0x18, 0x0C, 0x00,
		End,
	}

	winkingSmiley = []byte{
		0x10, 0x22, 0x20, 0x22, 0x10,
		0x10, 0x24, 0x20, 0x22, 0x10,
		0x10, 0x22, 0x20, 0x22, 0x10,
		End,
	}

	runningArrow = []byte{
		0x22, 0x14, 0x08, 0x00, 0x00,
		0x00, 0x22, 0x14, 0x08, 0x00,
		0x00, 0x00, 0x22, 0x14, 0x08,
		0x08, 0x00, 0x00, 0x22, 0x14,
		0x14, 0x08, 0x00, 0x00, 0x22,
		End,
	}

	spinner = []byte{
		0x00, 0x00, 0x7F, 0x00, 0x00,
		0x40, 0x20, 0x08, 0x02, 0x01,
		0x08, 0x08, 0x08, 0x08, 0x08,
		0x01, 0x02, 0x08, 0x20, 0x40,
		End,
	}
)

// Builtin is the animation table compiled into the firmware: '~A' heart
// beat, '~B' winking smiley, '~C' running arrow, '~D' spinner.
var Builtin = Table{heartBeat, winkingSmiley, runningArrow, spinner}
