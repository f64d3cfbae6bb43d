package app

import (
	"strings"

	"dotmatrix/kernel"
	"dotmatrix/services/logger"
)

// installPanicHandler reports the first task panic through the log mailbox.
// The handler runs in tick context, so it only queues lines.
func installPanicHandler(mb *kernel.Mailbox) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		logger.Logf(mb, "kernel: panic in task %s (%d) at tick %d: %v", info.Task, info.TaskID, info.Tick, info.Value)
		for _, line := range strings.Split(string(info.Stack), "\n") {
			if line == "" {
				continue
			}
			if !logger.Log(mb, line) {
				return
			}
		}
	})
}
