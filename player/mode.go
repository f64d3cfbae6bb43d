package player

import (
	"fmt"

	"dotmatrix/display"
)

const (
	modeBidirectional = 0x80
	modeDelayShift    = 4
	modeAnimation     = 0x08
	modeIndexMask     = 0x07

	textIncrement      = 1
	animationIncrement = display.Columns
)

// speedTable maps the speed index to the number of system ticks between
// scroll steps, minus one. Index 1 is the slowest defined speed, 7 the
// fastest; index 0 is not used by well-formed messages and scrolls slowest.
var speedTable = [8]uint8{200, 160, 120, 90, 65, 45, 30, 20}

// delayTable maps the delay index to the scroll steps paused at the end of
// the scrolling range.
var delayTable = [8]uint8{0, 5, 10, 20, 30, 45, 60, 90}

// Mode is a decoded mode byte.
type Mode struct {
	// Bidirectional turns around at either end instead of restarting.
	Bidirectional bool
	// Delay indexes the pause table (0 shortest, 7 longest).
	Delay uint8
	// Animation selects a scroll increment of one frame instead of one column.
	Animation bool
	// Speed indexes the speed table (1 slowest, 7 fastest).
	Speed uint8
}

// DecodeMode unpacks a mode byte. Every byte value decodes.
func DecodeMode(b byte) Mode {
	return Mode{
		Bidirectional: b&modeBidirectional != 0,
		Delay:         (b >> modeDelayShift) & modeIndexMask,
		Animation:     b&modeAnimation != 0,
		Speed:         b & modeIndexMask,
	}
}

// Byte packs m into a mode byte. Out-of-range indices are masked to 3 bits.
func (m Mode) Byte() byte {
	var b byte
	if m.Bidirectional {
		b |= modeBidirectional
	}
	b |= (m.Delay & modeIndexMask) << modeDelayShift
	if m.Animation {
		b |= modeAnimation
	}
	b |= m.Speed & modeIndexMask
	return b
}

// Increment returns the scroll increment in columns.
func (m Mode) Increment() uint8 {
	if m.Animation {
		return animationIncrement
	}
	return textIncrement
}

// Direction returns the scroll direction.
func (m Mode) Direction() display.Direction {
	if m.Bidirectional {
		return display.Bidirectional
	}
	return display.Forward
}

// DelaySteps returns the number of scroll steps paused at the end of range.
func (m Mode) DelaySteps() uint8 { return delayTable[m.Delay&modeIndexMask] }

// SpeedTicks returns the scroll countdown reload value.
func (m Mode) SpeedTicks() uint8 { return speedTable[m.Speed&modeIndexMask] }

func (m Mode) String() string {
	return fmt.Sprintf("inc=%d dir=%s delay=%d speed=%d", m.Increment(), m.Direction(), m.DelaySteps(), m.SpeedTicks())
}
