package msgstore

import "fmt"

const (
	escAnimation = '~'
	escDirect    = 0xFF
	escSpecial   = '^'
)

// Message is one playlist entry.
type Message struct {
	Mode    byte
	Content []byte
}

func (m Message) String() string {
	return fmt.Sprintf("%#02x %q", m.Mode, m.Content)
}

// Validate checks that m can be stored and played back as written.
func (m Message) Validate() error {
	if m.Mode == 0 {
		return ErrZeroMode
	}
	if len(m.Content) == 0 {
		return ErrEmptyMessage
	}

	direct := false
	for i := 0; i < len(m.Content); i++ {
		b := m.Content[i]
		if direct {
			if b == escDirect {
				direct = false
			}
			continue
		}
		switch b {
		case 0:
			return fmt.Errorf("offset %d: %w", i, ErrEmbeddedZero)
		case escDirect:
			direct = true
		case escAnimation, escSpecial:
			i++
			if i >= len(m.Content) {
				return ErrDanglingEscape
			}
			if m.Content[i] == 0 {
				return fmt.Errorf("offset %d: %w", i, ErrEmbeddedZero)
			}
		}
	}
	if direct {
		return ErrOpenDirect
	}
	return nil
}

// Split parses a store image into messages. Parsing stops at the first zero
// mode byte or at the end of the image.
func Split(data []byte) ([]Message, error) {
	var msgs []Message
	i := 0
	for i < len(data) && data[i] != 0 {
		mode := data[i]
		i++
		start := i
		direct := false
		for {
			if i >= len(data) {
				return msgs, fmt.Errorf("message at %d: %w", start-1, ErrCorrupt)
			}
			b := data[i]
			if direct {
				if b == escDirect {
					direct = false
				}
				i++
				continue
			}
			if b == 0 {
				break
			}
			switch b {
			case escDirect:
				direct = true
			case escAnimation, escSpecial:
				// an escape right before the terminator ends the message
				if i+1 < len(data) && data[i+1] != 0 {
					i++
				}
			}
			i++
		}
		msgs = append(msgs, Message{Mode: mode, Content: append([]byte(nil), data[start:i]...)})
		i++
	}
	return msgs, nil
}
