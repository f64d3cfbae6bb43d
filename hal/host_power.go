//go:build !tinygo

package hal

import (
	"context"
	"sync"
	"time"
)

const hostWakePoll = time.Millisecond

// hostPower halts by polling the button port for a level change, the way a
// pin-change interrupt would fire on either edge.
type hostPower struct {
	btn Button

	mu    sync.Mutex
	armed bool
	level uint8
}

func newHostPower(btn Button) *hostPower {
	return &hostPower{btn: btn}
}

func (p *hostPower) ArmWake() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.armed = true
	p.level = p.btn.Level()
	return nil
}

func (p *hostPower) DisarmWake() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.armed = false
	return nil
}

func (p *hostPower) Halt(ctx context.Context) error {
	p.mu.Lock()
	armed, level := p.armed, p.level
	p.mu.Unlock()

	t := time.NewTicker(hostWakePoll)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if armed && p.btn.Level() != level {
				return nil
			}
		}
	}
}
