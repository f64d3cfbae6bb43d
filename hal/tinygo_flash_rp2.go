//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"

	"tinygo.org/x/tinyfs"
)

// newRP2Flash returns the flash area after the program image. It is empty
// when the firmware fills the chip.
func newRP2Flash() tinyfs.BlockDevice {
	if machine.Flash.Size() < 2*machine.Flash.EraseBlockSize() {
		return nil
	}
	return machine.Flash
}
