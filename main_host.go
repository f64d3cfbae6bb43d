//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"dotmatrix/app"
	"dotmatrix/hal"
	"dotmatrix/msgstore"
)

func main() {
	var (
		cfg       hal.HeadlessConfig
		storePath string
		longPress uint
	)
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Matrix sampling rate for -show in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N kernel ticks in headless mode (0 = run forever).")
	flag.BoolVar(&cfg.Show, "show", false, "Print the matrix whenever it changes in headless mode.")
	flag.DurationVar(&cfg.Host.AutoPress, "autopress", 0, "Press the button once per period (e.g. 3s).")
	flag.DurationVar(&cfg.Host.AutoHold, "autohold", 0, "How long each -autopress press is held.")
	flag.StringVar(&storePath, "store", "", "Raw message store image (overrides the flash volume).")
	flag.UintVar(&longPress, "long-press", 0, "Long-press delay in system ticks (0 = default).")
	flag.Parse()

	acfg := app.DefaultConfig()
	acfg.LongPress = uint16(longPress)
	if storePath != "" {
		data, err := os.ReadFile(storePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if _, err := msgstore.Split(data); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", storePath, err)
			os.Exit(1)
		}
		acfg.Store = msgstore.New(data)
	}

	fw := func(ctx context.Context, h hal.HAL) error {
		f, err := app.New(h, acfg)
		if err != nil {
			return err
		}
		return f.Run(ctx)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, fw, cfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(fw, cfg.Host); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
