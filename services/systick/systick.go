// Package systick is the system tick task: it paces scroll steps and
// samples the push-button.
package systick

import (
	"dotmatrix/button"
	"dotmatrix/hal"
	"dotmatrix/kernel"
	"dotmatrix/services/logger"
)

// Scroller advances the display by one scroll step.
type Scroller interface {
	Scroll() bool
}

// SpeedSource supplies the scroll countdown reload value.
type SpeedSource interface {
	Load() uint8
}

type Service struct {
	scroll Scroller
	speed  SpeedSource
	btn    *button.Machine
	pin    hal.Button
	log    *kernel.Mailbox

	countdown uint8
	last      button.Event
}

// New returns the system tick task. log may be nil.
func New(scroll Scroller, speed SpeedSource, btn *button.Machine, pin hal.Button, log *kernel.Mailbox) *Service {
	return &Service{
		scroll:    scroll,
		speed:     speed,
		btn:       btn,
		pin:       pin,
		log:       log,
		countdown: 1,
		last:      button.Idle,
	}
}

// Step issues a scroll step when the countdown has run out, then samples
// the button. With a reload value of s a step is issued every s+1 ticks.
func (s *Service) Step(ctx *kernel.Context) {
	if s.countdown != 0 {
		s.countdown--
	} else {
		s.countdown = s.speed.Load()
		s.scroll.Scroll()
	}

	if s.btn == nil || s.pin == nil {
		return
	}
	s.btn.Sample(s.pin.Level())
	if e := s.btn.Event(); e != s.last {
		s.last = e
		if e == button.Released || e == button.LongPressed {
			logger.Logf(s.log, "button: %s at tick %d", e, ctx.NowTick())
		}
	}
}
