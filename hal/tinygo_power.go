//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"context"
	"fmt"
	"machine"
)

// pinPower waits for an edge on the button pin. The scheduler idles the
// core while Halt blocks.
type pinPower struct {
	pin  machine.Pin
	wake chan struct{}
}

func newPinPower(pin machine.Pin) *pinPower {
	return &pinPower{pin: pin, wake: make(chan struct{}, 1)}
}

func (p *pinPower) ArmWake() error {
	select {
	case <-p.wake:
	default:
	}
	err := p.pin.SetInterrupt(machine.PinToggle, func(machine.Pin) {
		select {
		case p.wake <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("arm wake interrupt: %w", err)
	}
	return nil
}

func (p *pinPower) Halt(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.wake:
		return nil
	}
}

func (p *pinPower) DisarmWake() error {
	if err := p.pin.SetInterrupt(0, nil); err != nil {
		return fmt.Errorf("disarm wake interrupt: %w", err)
	}
	return nil
}
