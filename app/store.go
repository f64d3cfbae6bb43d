package app

import (
	"errors"
	"fmt"

	"dotmatrix/hal"
	"dotmatrix/msgstore"
)

// loadStore reads the message store from the flash volume of h. It returns
// the built-in playlist when there is no flash or no image on it, and a
// description of where the store came from.
func loadStore(h hal.HAL) (*msgstore.Store, string, error) {
	dev := h.Flash()
	if dev == nil {
		return msgstore.Default(), "built-in", nil
	}

	vol, err := msgstore.OpenVolume(dev, true)
	if err != nil {
		return msgstore.Default(), "built-in", fmt.Errorf("open message volume: %w", err)
	}
	defer vol.Close()

	s, err := vol.Load()
	switch {
	case err == nil:
		return s, "flash " + msgstore.ImagePath, nil
	case errors.Is(err, msgstore.ErrNotFound):
		return msgstore.Default(), "built-in", nil
	default:
		return msgstore.Default(), "built-in", err
	}
}
