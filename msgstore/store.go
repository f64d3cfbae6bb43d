// Package msgstore holds the message store: the read-only byte image the
// player walks, and the tools that author it.
//
// Image layout: messages back to back, each a mode byte, content and a zero
// terminator, followed by a zero mode byte that marks the end of the
// playlist.
package msgstore

import "errors"

var (
	ErrZeroMode       = errors.New("msgstore: zero mode byte")
	ErrEmbeddedZero   = errors.New("msgstore: zero byte in message content")
	ErrDanglingEscape = errors.New("msgstore: escape at end of message content")
	ErrOpenDirect     = errors.New("msgstore: direct mode not closed")
	ErrEmptyMessage   = errors.New("msgstore: empty message content")
	ErrStoreFull      = errors.New("msgstore: store full")
	ErrNotFound       = errors.New("msgstore: no message store on volume")
	ErrCorrupt        = errors.New("msgstore: malformed store image")
)

// Store is an immutable message store image.
type Store struct {
	data []byte
}

// New returns a store holding a copy of data.
func New(data []byte) *Store {
	return &Store{data: append([]byte(nil), data...)}
}

// ByteAt returns the byte at addr, or 0 outside the image.
func (s *Store) ByteAt(addr int) byte {
	if addr < 0 || addr >= len(s.data) {
		return 0
	}
	return s.data[addr]
}

// Len returns the image size in bytes.
func (s *Store) Len() int { return len(s.data) }

// Bytes returns a copy of the image.
func (s *Store) Bytes() []byte { return append([]byte(nil), s.data...) }

// Messages splits the image into messages.
func (s *Store) Messages() ([]Message, error) { return Split(s.data) }
