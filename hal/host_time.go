//go:build !tinygo

package hal

import (
	"context"
	"time"
)

const hostTickDur = time.Millisecond

// hostTime turns wall-clock time into a 1 ms tick stream. Ticks that the
// consumer does not pick up in time are dropped; the sequence number still
// advances, so the kernel catches up on the next one it reads.
type hostTime struct {
	ch  chan uint64
	seq uint64

	now  func() time.Time
	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 64), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// run emits ticks until ctx is done.
func (t *hostTime) run(ctx context.Context) {
	ticker := time.NewTicker(hostTickDur)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.step()
		}
	}
}

func (t *hostTime) step() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.emit(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / hostTickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % hostTickDur
	t.emit(ticks)
}

func (t *hostTime) emit(n uint64) {
	t.seq += n
	select {
	case t.ch <- t.seq:
	default:
	}
}
