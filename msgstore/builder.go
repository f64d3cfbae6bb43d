package msgstore

import "fmt"

// Builder assembles a store image.
type Builder struct {
	buf      []byte
	capacity int
}

// NewBuilder returns a builder for an image of at most capacity bytes,
// including the end marker. A capacity of 0 means unlimited.
func NewBuilder(capacity int) *Builder {
	return &Builder{capacity: capacity}
}

// Add appends a message.
func (b *Builder) Add(m Message) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("add %s: %w", m, err)
	}
	need := len(b.buf) + 1 + len(m.Content) + 1 + 1
	if b.capacity > 0 && need > b.capacity {
		return fmt.Errorf("add %s: %d of %d bytes: %w", m, need, b.capacity, ErrStoreFull)
	}
	b.buf = append(b.buf, m.Mode)
	b.buf = append(b.buf, m.Content...)
	b.buf = append(b.buf, 0)
	return nil
}

// Len returns the size of the finished image.
func (b *Builder) Len() int { return len(b.buf) + 1 }

// Bytes returns the finished image.
func (b *Builder) Bytes() []byte {
	out := make([]byte, len(b.buf)+1)
	copy(out, b.buf)
	return out
}

// Store returns the finished image as a Store.
func (b *Builder) Store() *Store { return &Store{data: b.Bytes()} }

// Build encodes msgs into a store image.
func Build(msgs []Message, capacity int) (*Store, error) {
	b := NewBuilder(capacity)
	for _, m := range msgs {
		if err := b.Add(m); err != nil {
			return nil, err
		}
	}
	return b.Store(), nil
}
