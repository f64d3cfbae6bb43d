// Package button classifies push-button samples into press, release and
// long-press events.
//
// The event lives in a single atomic word shared by the sampler (tick
// context) and the main loop. The sampler latches at most one event; the main
// loop acts on it and acknowledges it, and the sampler does not fire the same
// transition again until the button goes through a new press.
package button

import "sync/atomic"

const (
	flagPress uint32 = 1 << iota
	flagAck
	flagLong
)

// Event is the observable state of the event word.
type Event uint8

const (
	// Idle means no unacknowledged event is pending.
	Idle Event = iota
	// Pressed is transitional: the button is held, long-press not reached.
	Pressed
	// Released follows a short press.
	Released
	// LongPressed is latched once when the button is held past the delay.
	LongPressed
)

func (e Event) String() string {
	switch e {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case LongPressed:
		return "long-pressed"
	default:
		return "unknown"
	}
}

func classify(s uint32) Event {
	switch s {
	case 0:
		return Released
	case flagPress:
		return Pressed
	case flagPress | flagLong:
		return LongPressed
	default:
		return Idle
	}
}

// Machine is the button state machine.
type Machine struct {
	state atomic.Uint32

	mask      uint8
	longPress uint16

	// timer is only touched by Sample.
	timer uint16

	notify chan struct{}
}

// New returns a machine in the acknowledged state.
//
// mask selects the input bits of the sampled level; the button is active low,
// so a sample counts as pressed when any masked bit reads 0. A press becomes a
// long press once more than longPress consecutive pressed samples were taken.
func New(mask uint8, longPress uint16) *Machine {
	if longPress == 0 {
		longPress = 1
	}
	m := &Machine{
		mask:      mask,
		longPress: longPress,
		notify:    make(chan struct{}, 1),
	}
	m.state.Store(flagAck)
	return m
}

// Sample feeds one raw input level. It is called once per system tick and
// never blocks.
func (m *Machine) Sample(level uint8) {
	pressed := ^level&m.mask != 0

	for {
		old := m.state.Load()
		next := old
		arm := false
		tick := false

		switch {
		case !pressed:
			if old&flagPress == 0 {
				return
			}
			next = old &^ (flagPress | flagAck)
		case old&flagPress == 0:
			next = flagPress
			arm = true
		case old == flagPress:
			if m.timer != 0 {
				tick = true
			} else {
				next = flagPress | flagLong
			}
		default:
			return
		}

		if tick {
			m.timer--
			return
		}
		if !m.state.CompareAndSwap(old, next) {
			continue
		}
		if arm {
			m.timer = m.longPress - 1
		}
		if e := classify(next); e == Released || e == LongPressed {
			select {
			case m.notify <- struct{}{}:
			default:
			}
		}
		return
	}
}

// Event returns the current event.
func (m *Machine) Event() Event { return classify(m.state.Load()) }

// Ack acknowledges the pending event.
func (m *Machine) Ack() {
	for {
		old := m.state.Load()
		if m.state.CompareAndSwap(old, old|flagAck) {
			return
		}
	}
}

// Notify returns a channel that is signalled when a release or long press is
// latched.
func (m *Machine) Notify() <-chan struct{} { return m.notify }

// LongPressSamples returns the configured long-press delay in samples.
func (m *Machine) LongPressSamples() uint16 { return m.longPress }
