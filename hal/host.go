//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"tinygo.org/x/tinyfs"
)

// HostOptions configures the host HAL.
type HostOptions struct {
	// AutoPress, when nonzero, holds the button for AutoHold at the start of
	// every AutoPress period instead of reading the window keyboard.
	AutoPress time.Duration
	AutoHold  time.Duration

	// FlashPath overrides the flash image file. Empty uses StorePathEnv or
	// the default path.
	FlashPath string
}

type hostHAL struct {
	logger *hostLogger
	panel  *ledPanel
	key    *virtualPin
	button pinButton
	power  *hostPower
	flash  *hostFlash
	t      *hostTime
}

// New returns a host HAL implementation with default options.
func New() HAL {
	return newHostHAL(HostOptions{})
}

func newHostHAL(opts HostOptions) *hostHAL {
	logger := &hostLogger{w: os.Stdout}
	key := newVirtualPin("BUTTON")

	var pin pressPin = key
	if opts.AutoPress > 0 {
		hold := opts.AutoHold
		if hold <= 0 {
			hold = opts.AutoPress / 4
		}
		pin = newSignalPin("AUTOPRESS", opts.AutoPress, hold)
	}
	btn := pinButton{pin: pin}

	path := opts.FlashPath
	if path == "" {
		path = hostFlashPath()
	}
	flash, err := openHostFlash(path, 0)
	if err != nil {
		logger.WriteLineString(fmt.Sprintf("hal: %v", err))
		flash = nil
	}

	return &hostHAL{
		logger: logger,
		panel:  newLEDPanel(),
		key:    key,
		button: btn,
		power:  newHostPower(btn),
		flash:  flash,
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) Matrix() Matrix { return h.panel }
func (h *hostHAL) Button() Button { return h.button }
func (h *hostHAL) Power() Power   { return h.power }
func (h *hostHAL) Time() Time     { return h.t }

func (h *hostHAL) Flash() tinyfs.BlockDevice {
	if h.flash == nil {
		return nil
	}
	return h.flash
}

func (h *hostHAL) close() {
	if h.flash != nil {
		_ = h.flash.Close()
	}
}

// runFirmware starts the tick stream and runs fw until it returns or ctx is
// done. The returned channel receives fw's result.
func (h *hostHAL) runFirmware(ctx context.Context, fw func(context.Context, HAL) error) <-chan error {
	go h.t.run(ctx)
	done := make(chan error, 1)
	go func() {
		done <- fw(ctx, h)
	}()
	return done
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
