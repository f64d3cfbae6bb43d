//go:build tinygo && !baremetal

package hal

import (
	"context"
	"time"

	"tinygo.org/x/tinyfs"
)

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	panel  *ledPanel
	flash  tinyfs.BlockDevice
	t      *tinyGoHostTime
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping. The button never moves and the message volume lives in RAM.
func New() HAL {
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		panel:  newLEDPanel(),
		flash:  tinyfs.NewMemoryDevice(256, 4096, 64),
		t:      newTinyGoHostTime(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger            { return h.logger }
func (h *tinyGoHostHAL) Matrix() Matrix            { return h.panel }
func (h *tinyGoHostHAL) Button() Button            { return idleButton{} }
func (h *tinyGoHostHAL) Power() Power              { return tinyGoHostPower{} }
func (h *tinyGoHostHAL) Flash() tinyfs.BlockDevice { return h.flash }
func (h *tinyGoHostHAL) Time() Time                { return h.t }

type idleButton struct{}

func (idleButton) Level() uint8 { return 0xFF }

// tinyGoHostPower has no wake source and sleeps for a fixed nap.
type tinyGoHostPower struct{}

func (tinyGoHostPower) ArmWake() error    { return nil }
func (tinyGoHostPower) DisarmWake() error { return nil }

func (tinyGoHostPower) Halt(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
		return nil
	}
}

type tinyGoHostTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoHostTime() *tinyGoHostTime {
	t := &tinyGoHostTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoHostTime) Ticks() <-chan uint64 { return t.ch }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
