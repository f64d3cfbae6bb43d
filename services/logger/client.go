package logger

import (
	"fmt"

	"dotmatrix/kernel"
)

// Log queues a line on mb. It never blocks and reports false when the line
// was dropped because the mailbox is full. Lines longer than
// kernel.MaxMessageBytes are truncated.
func Log(mb *kernel.Mailbox, line string) bool {
	if mb == nil {
		return false
	}
	var msg kernel.Message
	msg.Kind = kernel.MsgLog
	msg.Len = uint16(copy(msg.Data[:], line))
	return mb.TrySend(msg)
}

// Logf formats a line and queues it with Log.
func Logf(mb *kernel.Mailbox, format string, args ...any) bool {
	return Log(mb, fmt.Sprintf(format, args...))
}
