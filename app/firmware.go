// Package app is the firmware: it boots asleep, plays one message per
// button press and goes back to sleep on a long press.
package app

import (
	"context"
	"sync/atomic"
	"time"

	"dotmatrix/button"
	"dotmatrix/display"
	"dotmatrix/hal"
	"dotmatrix/internal/buildinfo"
	"dotmatrix/kernel"
	"dotmatrix/msgstore"
	"dotmatrix/player"
	"dotmatrix/services/logger"
	"dotmatrix/services/refresh"
	"dotmatrix/services/systick"
)

// State is the main loop state.
type State uint32

const (
	StateAsleep State = iota
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateAsleep:
		return "asleep"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

const bootStepDone = "done"

type Firmware struct {
	cfg Config
	h   hal.HAL

	k    *kernel.Kernel
	mb   *kernel.Mailbox
	logs *logger.Service

	disp   *display.Display
	speed  *player.Speed
	btn    *button.Machine
	player *player.Player

	store  *msgstore.Store
	source string

	state   atomic.Uint32
	current atomic.Int64
	next    atomic.Int64
}

// New wires the firmware to h and registers the refresh and system tick
// tasks. Nothing runs until Run (or the caller) feeds the kernel ticks.
func New(h hal.HAL, cfg Config) (*Firmware, error) {
	cfg = cfg.withDefaults()

	f := &Firmware{
		cfg: cfg,
		h:   h,
		k:   kernel.New(),
		mb:  kernel.NewMailbox(),
	}
	f.logs = logger.New(h.Logger(), f.mb)
	installPanicHandler(f.mb)

	f.store, f.source = cfg.Store, "config"
	if f.store == nil {
		var err error
		f.store, f.source, err = loadStore(h)
		if err != nil {
			logger.Logf(f.mb, "app: %v; using the built-in playlist", err)
		}
	}

	f.disp = display.New(h.Matrix())
	f.speed = player.NewSpeed()
	f.btn = button.New(cfg.ButtonMask, cfg.LongPress)
	f.player = player.New(f.disp, f.store, cfg.Animations, f.speed)

	if _, err := f.k.AddTask("refresh", refresh.New(f.disp), cfg.RefreshPeriod); err != nil {
		return nil, err
	}
	sys := systick.New(f.disp, f.speed, f.btn, h.Button(), f.mb)
	if _, err := f.k.AddTask("systick", sys, cfg.SystemPeriod); err != nil {
		return nil, err
	}

	f.state.Store(uint32(StateAsleep))
	f.current.Store(player.FirstMessage)
	f.next.Store(player.FirstMessage)
	return f, nil
}

// Run starts the firmware on h with the default configuration. It does not
// return.
func Run(h hal.HAL) {
	f, err := New(h, DefaultConfig())
	if err != nil {
		h.Logger().WriteLineString("app: " + err.Error())
		select {}
	}
	if err := f.Run(context.Background()); err != nil {
		h.Logger().WriteLineString("app: " + err.Error())
	}
	select {}
}

// Run feeds the HAL ticks to the kernel, boots and then handles button
// events until ctx is done.
func (f *Firmware) Run(ctx context.Context) error {
	bootDiagStart(f.h)
	go f.logs.Run(ctx)
	if t := f.h.Time(); t != nil {
		if ch := t.Ticks(); ch != nil {
			go f.tick(ctx, ch)
		}
	}

	if err := f.Boot(ctx); err != nil {
		return err
	}
	for {
		if err := f.Step(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.btn.Notify():
		}
	}
}

func (f *Firmware) tick(ctx context.Context, ch <-chan uint64) {
	for {
		select {
		case <-ctx.Done():
			return
		case seq, ok := <-ch:
			if !ok {
				return
			}
			f.k.TickTo(seq)
		}
	}
}

// Boot puts the device to sleep; the first wake starts playback at the
// first message.
func (f *Firmware) Boot(ctx context.Context) error {
	bootDiagSetStep("boot")
	logger.Logf(f.mb, "app: dotmatrix %s, %d store bytes from %s", buildinfo.Long(), f.store.Len(), f.source)

	bootDiagSetStep("sleep")
	if err := f.sleep(ctx); err != nil {
		return err
	}
	f.btn.Ack()
	bootDiagSetStep(bootStepDone)
	return nil
}

// Step handles the pending button event, if any. It blocks while a glyph is
// held or the device sleeps.
func (f *Firmware) Step(ctx context.Context) error {
	switch f.btn.Event() {
	case button.Released:
		cur := int(f.next.Load())
		f.current.Store(int64(cur))
		f.next.Store(int64(f.player.Play(cur)))
		logger.Logf(f.mb, "player: message at %d, mode %s", cur, player.DecodeMode(f.store.ByteAt(cur)))
		f.btn.Ack()

	case button.LongPressed:
		logger.Log(f.mb, "app: long press, going to sleep")
		f.disp.Clear()
		f.disp.PrintChar(f.cfg.SleepGlyph)
		if err := hold(ctx, f.cfg.SleepGlyphHold); err != nil {
			return err
		}
		if err := f.sleep(ctx); err != nil {
			return err
		}
		f.btn.Ack()
	}
	return nil
}

// sleep blanks the matrix, halts until the wake source fires and restarts
// playback from the first message.
func (f *Firmware) sleep(ctx context.Context) error {
	f.disp.Clear()
	if err := hold(ctx, f.cfg.SleepHold); err != nil {
		return err
	}

	f.state.Store(uint32(StateAsleep))
	if err := f.halt(ctx); err != nil {
		return err
	}
	logger.Log(f.mb, "power: wake")

	f.disp.PrintChar(f.cfg.WakeGlyph)
	if err := hold(ctx, f.cfg.WakeHold); err != nil {
		return err
	}
	f.current.Store(player.FirstMessage)
	f.next.Store(int64(f.player.Play(player.FirstMessage)))
	f.state.Store(uint32(StatePlaying))
	return nil
}

// halt stops the timers until the wake source fires. When the wake source
// cannot be armed the device stays awake instead of halting for good.
func (f *Firmware) halt(ctx context.Context) error {
	pw := f.h.Power()
	if pw == nil {
		return nil
	}
	if err := pw.ArmWake(); err != nil {
		logger.Logf(f.mb, "power: %v; staying awake", err)
		return nil
	}

	f.k.Suspend()
	logger.Log(f.mb, "power: halt")
	err := pw.Halt(ctx)
	f.k.Resume()
	if derr := pw.DisarmWake(); derr != nil {
		logger.Logf(f.mb, "power: %v", derr)
	}
	return err
}

func hold(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (f *Firmware) State() State { return State(f.state.Load()) }

// Current returns the store address of the message on display.
func (f *Firmware) Current() int { return int(f.current.Load()) }

// Next returns the store address the next short press plays.
func (f *Firmware) Next() int { return int(f.next.Load()) }

func (f *Firmware) Kernel() *kernel.Kernel   { return f.k }
func (f *Firmware) Display() *display.Display { return f.disp }
func (f *Firmware) Store() *msgstore.Store    { return f.store }
