package kernel

import (
	"sync"
	"sync/atomic"
)

// MaxMessageBytes is the maximum payload size of a mailbox message.
const MaxMessageBytes = 96

// Message is a fixed-size message envelope.
type Message struct {
	Kind uint8
	Len  uint16
	Data [MaxMessageBytes]byte
}

const (
	MsgLog uint8 = iota + 1
)

// Payload returns the valid portion of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

const mailboxSlots = 16

// Mailbox is a fixed-size multi-producer, single-consumer queue.
//
// Producers may run in tick context: TrySend never allocates and never
// blocks on the consumer, it drops the message when the queue is full.
type Mailbox struct {
	_      [0]func() // prevent accidental copying.
	sendMu sync.Mutex
	head   atomic.Uint32
	tail   atomic.Uint32
	slots  [mailboxSlots]Message
	notify chan struct{}
}

// NewMailbox returns an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{notify: make(chan struct{}, 1)}
}

// TrySend attempts to enqueue a message, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(msg Message) bool {
	mb.sendMu.Lock()
	head := mb.head.Load()
	tail := mb.tail.Load()
	if head-tail >= mailboxSlots {
		mb.sendMu.Unlock()
		return false
	}
	mb.slots[head%mailboxSlots] = msg
	mb.head.Store(head + 1)
	mb.sendMu.Unlock()

	select {
	case mb.notify <- struct{}{}:
	default:
	}
	return true
}

// TryRecv attempts to dequeue one message, returning false if empty.
//
// Only one goroutine may receive.
func (mb *Mailbox) TryRecv() (Message, bool) {
	tail := mb.tail.Load()
	head := mb.head.Load()
	if tail == head {
		return Message{}, false
	}

	msg := mb.slots[tail%mailboxSlots]
	mb.tail.Store(tail + 1)
	return msg, true
}

// Notify returns a channel that receives a value after at least one
// successful TrySend since the last receive from it.
func (mb *Mailbox) Notify() <-chan struct{} {
	return mb.notify
}
