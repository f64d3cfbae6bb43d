package player

import "sync/atomic"

// InitialSpeed is the scroll countdown reload value before the first message
// is played.
const InitialSpeed = 8

// Speed holds the scroll countdown reload value. It is written by the main
// loop when a message starts and read by the system tick.
//
// The two sides do not synchronise beyond the atomic word: a tick that races
// a message change may reload its countdown with the previous speed once.
type Speed struct {
	v atomic.Uint32
}

// NewSpeed returns a speed cell holding InitialSpeed.
func NewSpeed() *Speed {
	s := &Speed{}
	s.Store(InitialSpeed)
	return s
}

func (s *Speed) Load() uint8 { return uint8(s.v.Load()) }

func (s *Speed) Store(ticks uint8) { s.v.Store(uint32(ticks)) }
