package hal

import (
	"context"
	"errors"

	"tinygo.org/x/tinyfs"
)

const (
	// MatrixColumns and MatrixRows are the size of the LED matrix.
	MatrixColumns = 5
	MatrixRows    = 7

	// ButtonMask selects the push-button bit of Button.Level.
	ButtonMask uint8 = 0x01
)

var ErrNotImplemented = errors.New("not implemented")

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Matrix is the multiplexed LED matrix. DriveColumn lights column col with
// pattern (bit 0 is the top row) and switches every other column off.
type Matrix interface {
	DriveColumn(col int, pattern uint8)
}

// Button is the push-button input port. The button pulls its bit low while
// pressed.
type Button interface {
	Level() uint8
}

// Power controls the low-power halt.
//
// ArmWake enables the pin-change wake source, Halt stops until it fires (or
// ctx is done) and DisarmWake turns the source off again. Halt must not be
// called when ArmWake failed: nothing would wake it.
type Power interface {
	ArmWake() error
	Halt(ctx context.Context) error
	DisarmWake() error
}

// Time provides the 1 ms kernel tick stream.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the firmware and the outside
// world.
type HAL interface {
	Logger() Logger
	Matrix() Matrix
	Button() Button
	Power() Power
	// Flash returns the block device holding the message volume, or nil.
	Flash() tinyfs.BlockDevice
	Time() Time
}
