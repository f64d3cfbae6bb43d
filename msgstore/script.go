package msgstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dotmatrix/fonts/font5x7"
)

var ErrScriptSyntax = errors.New("msgstore: script syntax")

// ParseScript reads a message script: one message per line,
//
//	<mode> "<content>"
//
// with the mode as a Go integer literal and the content as a Go interpreted
// string. Escapes such as \xff give raw bytes; literal characters are stored
// in the display character set (Latin-1, extended glyphs by rune). Blank
// lines and lines starting with '#' are skipped.
func ParseScript(r io.Reader) ([]Message, error) {
	var msgs []Message
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		m, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		msgs = append(msgs, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return msgs, nil
}

func parseLine(text string) (Message, error) {
	sep := strings.IndexAny(text, " \t")
	if sep < 0 {
		return Message{}, fmt.Errorf("want <mode> \"<content>\": %w", ErrScriptSyntax)
	}
	modeText, rest := text[:sep], text[sep+1:]
	mode, err := strconv.ParseUint(modeText, 0, 8)
	if err != nil {
		return Message{}, fmt.Errorf("mode %q: %w", modeText, ErrScriptSyntax)
	}
	content, err := unquoteContent(strings.TrimSpace(rest))
	if err != nil {
		return Message{}, err
	}
	return Message{Mode: byte(mode), Content: content}, nil
}

func unquoteContent(s string) ([]byte, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, fmt.Errorf("content %s: want a double-quoted string: %w", s, ErrScriptSyntax)
	}
	s = s[1 : len(s)-1]

	var out []byte
	for len(s) > 0 {
		r, multibyte, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			return nil, fmt.Errorf("content: %v: %w", err, ErrScriptSyntax)
		}
		s = tail
		switch {
		case !multibyte:
			out = append(out, byte(r))
		case r <= 0xFF:
			out = append(out, byte(r))
		default:
			code, ok := font5x7.Code(r)
			if !ok {
				return nil, fmt.Errorf("content: no glyph for %q: %w", r, ErrScriptSyntax)
			}
			out = append(out, code)
		}
	}
	return out, nil
}

// QuoteContent formats content so that ParseScript reads it back unchanged.
func QuoteContent(content []byte) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, b := range content {
		switch {
		case b == '"' || b == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(b)
		case b >= 0x20 && b < 0x7F:
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, "\\x%02x", b)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// WriteScript writes msgs in the ParseScript format.
func WriteScript(w io.Writer, msgs []Message) error {
	for _, m := range msgs {
		if _, err := fmt.Fprintf(w, "%#02x %s\n", m.Mode, QuoteContent(m.Content)); err != nil {
			return err
		}
	}
	return nil
}
