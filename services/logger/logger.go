// Package logger moves log lines from the mailbox to the HAL logger.
package logger

import (
	"context"

	"dotmatrix/hal"
	"dotmatrix/kernel"
)

// Service writes queued log lines to the HAL logger. It is the only
// receiver of its mailbox.
type Service struct {
	log hal.Logger
	mb  *kernel.Mailbox
}

// New returns a service draining mb into log. A nil log discards lines.
func New(log hal.Logger, mb *kernel.Mailbox) *Service {
	return &Service{log: log, mb: mb}
}

// Drain writes every queued line and returns how many were written.
func (s *Service) Drain() int {
	n := 0
	for {
		msg, ok := s.mb.TryRecv()
		if !ok {
			return n
		}
		if msg.Kind != kernel.MsgLog || s.log == nil {
			continue
		}
		s.log.WriteLineBytes(msg.Payload())
		n++
	}
}

// Run drains the mailbox whenever it is signalled, until ctx is done.
func (s *Service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.Drain()
			return
		case <-s.mb.Notify():
			s.Drain()
		}
	}
}
