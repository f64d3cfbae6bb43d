//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// Hz is the rate at which the matrix is sampled for Show.
	Hz int
	// Ticks stops the run after that many kernel ticks (0 = run forever).
	Ticks uint64
	// Show logs the matrix as text whenever it changes.
	Show bool
	Host HostOptions
}

// RunHeadless runs the firmware without opening a window.
func RunHeadless(ctx context.Context, fw func(context.Context, HAL) error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHostHAL(cfg.Host)
	defer h.close()

	if cfg.Ticks > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Ticks)*hostTickDur)
		defer cancel()
	}
	done := h.runFirmware(ctx, fw)

	t := time.NewTicker(d)
	defer t.Stop()

	var shown [MatrixColumns]uint8
	first := true
	for {
		select {
		case err := <-done:
			if cfg.Ticks > 0 && errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		case <-t.C:
			if !cfg.Show {
				continue
			}
			cols, _ := h.panel.Snapshot()
			if !first && cols == shown {
				continue
			}
			first = false
			shown = cols
			h.logger.WriteLineString(renderPanel(cols))
			h.logger.WriteLineString("")
		}
	}
}
