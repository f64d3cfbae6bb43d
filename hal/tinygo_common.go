//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

// tinyGoTime counts milliseconds since boot. A ticker wake-up that comes
// late still reports the true count, so the kernel catches up.
type tinyGoTime struct {
	ch    chan uint64
	start time.Time
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16), start: time.Now()}
	go t.run()
	return t
}

func (t *tinyGoTime) run() {
	ticker := time.NewTicker(hwTickDur)
	defer ticker.Stop()
	var last uint64
	for range ticker.C {
		seq := uint64(time.Since(t.start) / hwTickDur)
		if seq == last {
			continue
		}
		last = seq
		select {
		case t.ch <- seq:
		default:
		}
	}
}

const hwTickDur = time.Millisecond

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

// uartLogger writes CRLF-terminated lines to a UART.
type uartLogger struct {
	uart *machine.UART
}

var crlf = []byte{'\r', '\n'}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.Write(crlf)
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write(crlf)
}
