package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo describes a periodic task that panicked during its step. The
// task has been disabled when the handler sees it; the other tasks keep
// their schedule.
type PanicInfo struct {
	TaskID TaskID
	Task   string
	// Tick is the tick the failing step was scheduled on.
	Tick  uint64
	Value any
	Stack []byte
}

var (
	panicCount atomic.Uint32
	reportOnce sync.Once

	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether any task has been disabled by a panic.
func InPanicMode() bool {
	return panicCount.Load() != 0
}

// PanicCount returns the number of tasks disabled by a panic.
func PanicCount() int {
	return int(panicCount.Load())
}

// SetPanicHandler installs the process-wide panic report.
//
// Only the first panic is reported, from tick context with the kernel lock
// held: the handler must not block or call back into a kernel.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func reportPanic(info PanicInfo) {
	panicCount.Add(1)
	reportOnce.Do(func() {
		info.Stack = captureStack()
		fn, _ := panicHandler.Load().(func(PanicInfo))
		if fn != nil {
			fn(info)
		}
	})
}
