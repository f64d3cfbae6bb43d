package hal

import (
	"fmt"
	"sync"
	"time"
)

// pressPin reports whether a simulated push-button is held.
type pressPin interface {
	Name() string
	Read() (held bool, err error)
}

// pinButton is the port of a simulated button: the button bit reads low
// while the pin is held, every other bit reads high (pull-ups).
type pinButton struct {
	pin pressPin
}

func (b pinButton) Level() uint8 {
	held, err := b.pin.Read()
	if err != nil || !held {
		return 0xFF
	}
	return ^ButtonMask
}

// virtualPin is a pin set by the host UI.
type virtualPin struct {
	mu   sync.Mutex
	name string
	held bool
}

func newVirtualPin(name string) *virtualPin {
	return &virtualPin{name: name}
}

func (p *virtualPin) Name() string { return p.name }

func (p *virtualPin) Set(held bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held = held
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.held, nil
}

// signalPin is held for the first high of every period, starting at t0.
type signalPin struct {
	mu   sync.Mutex
	name string

	t0     time.Time
	now    func() time.Time
	period time.Duration
	high   time.Duration
}

func newSignalPin(name string, period, high time.Duration) *signalPin {
	return newSignalPinWithClock(name, period, high, time.Now)
}

func newSignalPinWithClock(name string, period, high time.Duration, now func() time.Time) *signalPin {
	if now == nil {
		now = time.Now
	}
	return &signalPin{
		name:   name,
		t0:     now(),
		now:    now,
		period: period,
		high:   high,
	}
}

func (p *signalPin) Name() string { return p.name }

func (p *signalPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.period <= 0 {
		return false, fmt.Errorf("pin %s: invalid period", p.name)
	}

	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	phase := elapsed % p.period
	return phase < p.high, nil
}
