package app

import (
	"time"

	"dotmatrix/anim"
	"dotmatrix/fonts/font5x7"
	"dotmatrix/hal"
	"dotmatrix/msgstore"
)

// Config holds the firmware timing and behaviour knobs.
type Config struct {
	// RefreshPeriod and SystemPeriod are the task periods in kernel ticks.
	RefreshPeriod uint64
	SystemPeriod  uint64

	// LongPress is the long-press delay in system ticks.
	LongPress uint16

	// Zero holds do not wait.
	SleepHold      time.Duration
	WakeHold       time.Duration
	SleepGlyphHold time.Duration

	SleepGlyph byte
	WakeGlyph  byte

	ButtonMask uint8

	// Store overrides the message store. When nil the store is loaded from
	// the HAL flash volume, falling back to msgstore.Default.
	Store *msgstore.Store

	// Animations overrides the animation table. Nil uses anim.Builtin.
	Animations anim.Table
}

// DefaultConfig returns the board configuration.
func DefaultConfig() Config {
	return Config{
		RefreshPeriod:  2,
		SystemPeriod:   2,
		LongPress:      750,
		SleepHold:      time.Second,
		WakeHold:       500 * time.Millisecond,
		SleepGlyphHold: 500 * time.Millisecond,
		SleepGlyph:     font5x7.SadFace,
		WakeGlyph:      font5x7.HappyFace,
		ButtonMask:     hal.ButtonMask,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RefreshPeriod == 0 {
		c.RefreshPeriod = d.RefreshPeriod
	}
	if c.SystemPeriod == 0 {
		c.SystemPeriod = d.SystemPeriod
	}
	if c.LongPress == 0 {
		c.LongPress = d.LongPress
	}
	if c.SleepGlyph == 0 {
		c.SleepGlyph = d.SleepGlyph
	}
	if c.WakeGlyph == 0 {
		c.WakeGlyph = d.WakeGlyph
	}
	if c.ButtonMask == 0 {
		c.ButtonMask = d.ButtonMask
	}
	return c
}
