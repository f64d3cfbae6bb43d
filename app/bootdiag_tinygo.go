//go:build tinygo && bootdebug

package app

import (
	"machine"
	"sync/atomic"
	"time"

	"dotmatrix/hal"
)

var bootDiagStep atomic.Value // string

func bootDiagSetStep(msg string) { bootDiagStep.Store(msg) }

// bootDiagStart repeats the current boot step on the UART and on USB CDC
// until boot reaches bootStepDone, so a board that hangs before the matrix
// lights up still says where it stopped.
func bootDiagStart(h hal.HAL) {
	var l hal.Logger
	if h != nil {
		l = h.Logger()
	}
	go func() {
		for {
			step, _ := bootDiagStep.Load().(string)
			if step == "" {
				step = "<empty>"
			}
			line := "bootdiag: " + step
			if l != nil {
				l.WriteLineString(line)
			}
			if usb := machine.USBCDC; usb != nil {
				_, _ = usb.Write([]byte(line + "\r\n"))
			}
			if step == bootStepDone {
				return
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()
}
