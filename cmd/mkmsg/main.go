//go:build !tinygo

// Command mkmsg compiles a message script into a store image.
//
// By default the store is written to /messages.bin on the LittleFS volume of
// a flash image, the file the host build mounts. With -raw it writes the bare
// store bytes instead. -dump prints the messages of an existing image as a
// script.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"dotmatrix/hal"
	"dotmatrix/msgstore"
)

const defaultFlashPath = "dotmatrix.flash"

type options struct {
	in        string
	out       string
	raw       string
	flashSize int64
	capacity  int
	dump      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", "", "Message script (default stdin).")
	flag.StringVar(&opts.out, "out", defaultFlashPath, "Flash image path.")
	flag.StringVar(&opts.raw, "raw", "", "Write (or with -dump read) a raw store image instead of a flash image.")
	flag.Int64Var(&opts.flashSize, "size", 0, "Size of a new flash image in bytes (0 = default).")
	flag.IntVar(&opts.capacity, "capacity", msgstore.DefaultCapacity, "Store capacity in bytes (0 = unlimited).")
	flag.BoolVar(&opts.dump, "dump", false, "Print the messages of an existing image.")
	flag.Parse()

	var err error
	if opts.dump {
		err = dump(os.Stdout, opts)
	} else {
		err = compile(opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func compile(opts options) error {
	var in io.Reader = os.Stdin
	if opts.in != "" {
		f, err := os.Open(opts.in)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	msgs, err := msgstore.ParseScript(in)
	if err != nil {
		return err
	}
	s, err := msgstore.Build(msgs, opts.capacity)
	if err != nil {
		return err
	}

	if opts.raw != "" {
		if err := os.WriteFile(opts.raw, s.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write raw image: %w", err)
		}
		return nil
	}
	return saveFlash(opts.out, opts.flashSize, s)
}

func saveFlash(path string, size int64, s *msgstore.Store) error {
	dev, err := hal.OpenFlashImage(path, size)
	if err != nil {
		return err
	}
	defer dev.Close()

	vol, err := msgstore.OpenVolume(dev, true)
	if err != nil {
		return err
	}
	if err := vol.Save(s); err != nil {
		_ = vol.Close()
		return err
	}
	return vol.Close()
}

func dump(w io.Writer, opts options) error {
	s, err := loadImage(opts)
	if err != nil {
		return err
	}
	msgs, err := s.Messages()
	if err != nil {
		return err
	}
	return msgstore.WriteScript(w, msgs)
}

func loadImage(opts options) (*msgstore.Store, error) {
	if opts.raw != "" {
		data, err := os.ReadFile(opts.raw)
		if err != nil {
			return nil, fmt.Errorf("read raw image: %w", err)
		}
		return msgstore.New(data), nil
	}

	if _, err := os.Stat(opts.out); err != nil {
		return nil, fmt.Errorf("flash image: %w", err)
	}
	dev, err := hal.OpenFlashImage(opts.out, 0)
	if err != nil {
		return nil, err
	}
	defer dev.Close()

	vol, err := msgstore.OpenVolume(dev, false)
	if err != nil {
		return nil, err
	}
	defer vol.Close()

	s, err := vol.Load()
	if errors.Is(err, msgstore.ErrNotFound) {
		return nil, fmt.Errorf("%s: no %s on the volume", opts.out, msgstore.ImagePath)
	}
	return s, err
}
