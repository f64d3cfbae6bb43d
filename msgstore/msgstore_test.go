package msgstore

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"tinygo.org/x/tinyfs"
)

func TestStoreByteAtOutOfRange(t *testing.T) {
	s := New([]byte{1, 'A', 0, 0})
	for _, addr := range []int{-1, 4, 100} {
		if got := s.ByteAt(addr); got != 0 {
			t.Fatalf("ByteAt(%d) = %d, want 0", addr, got)
		}
	}
	if got := s.ByteAt(1); got != 'A' {
		t.Fatalf("ByteAt(1) = %q, want 'A'", got)
	}
}

func TestStoreIsImmutable(t *testing.T) {
	data := []byte{1, 'A', 0, 0}
	s := New(data)
	data[1] = 'B'
	out := s.Bytes()
	out[1] = 'C'
	if got := s.ByteAt(1); got != 'A' {
		t.Fatalf("ByteAt(1) = %q, want 'A'", got)
	}
}

func TestValidate(t *testing.T) {
	tcs := []struct {
		name string
		msg  Message
		err  error
	}{
		{name: "plain", msg: Message{Mode: 1, Content: []byte("hi")}},
		{name: "zero mode", msg: Message{Mode: 0, Content: []byte("hi")}, err: ErrZeroMode},
		{name: "empty", msg: Message{Mode: 1}, err: ErrEmptyMessage},
		{name: "embedded zero", msg: Message{Mode: 1, Content: []byte{'a', 0, 'b'}}, err: ErrEmbeddedZero},
		{name: "zero in direct mode", msg: Message{Mode: 1, Content: []byte{0xFF, 0, 0x7F, 0xFF}}},
		{name: "open direct", msg: Message{Mode: 1, Content: []byte{0xFF, 0x7F}}, err: ErrOpenDirect},
		{name: "dangling tilde", msg: Message{Mode: 1, Content: []byte("ab~")}, err: ErrDanglingEscape},
		{name: "dangling caret", msg: Message{Mode: 1, Content: []byte("^")}, err: ErrDanglingEscape},
		{name: "escaped ff is not direct", msg: Message{Mode: 1, Content: []byte{'^', 0xFF, 'a'}}},
		{name: "double caret", msg: Message{Mode: 1, Content: []byte("^^")}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.err == nil && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Fatalf("Validate() = %v, want %v", err, tc.err)
			}
		})
	}
}

func TestBuildLayout(t *testing.T) {
	s, err := Build([]Message{
		{Mode: 0x05, Content: []byte("A")},
		{Mode: 0x0F, Content: []byte{0xFF, 0x00, 0xFF}},
	}, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []byte{0x05, 'A', 0, 0x0F, 0xFF, 0x00, 0xFF, 0, 0}
	if got := s.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("image = % x, want % x", got, want)
	}
}

func TestBuilderCapacity(t *testing.T) {
	b := NewBuilder(6)
	if err := b.Add(Message{Mode: 1, Content: []byte("abc")}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if b.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", b.Len())
	}
	if err := b.Add(Message{Mode: 1, Content: []byte("d")}); !errors.Is(err, ErrStoreFull) {
		t.Fatalf("Add over capacity = %v, want ErrStoreFull", err)
	}
	if got := b.Bytes(); !bytes.Equal(got, []byte{1, 'a', 'b', 'c', 0, 0}) {
		t.Fatalf("image after failed add = % x", got)
	}
}

func TestSplitRoundTrip(t *testing.T) {
	msgs := []Message{
		{Mode: 0x16, Content: []byte("Hello")},
		{Mode: 0x0E, Content: []byte("~A~~")},
		{Mode: 0x01, Content: []byte{0xFF, 0x00, '~', 0xFF, '^', 0x00 + 'x'}},
	}
	s, err := Build(msgs, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := s.Messages()
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(got) != len(msgs) {
		t.Fatalf("got %d messages, want %d", len(got), len(msgs))
	}
	for i := range msgs {
		if got[i].Mode != msgs[i].Mode || !bytes.Equal(got[i].Content, msgs[i].Content) {
			t.Fatalf("message %d = %s, want %s", i, got[i], msgs[i])
		}
	}
}

func TestSplitTruncatedImage(t *testing.T) {
	if _, err := Split([]byte{1, 'a', 'b'}); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Split = %v, want ErrCorrupt", err)
	}
	msgs, err := Split([]byte{1, 'a', 0})
	if err != nil || len(msgs) != 1 {
		t.Fatalf("Split without end marker = %v, %v", msgs, err)
	}
}

func TestSplitEscapeBeforeTerminator(t *testing.T) {
	msgs, err := Split([]byte{1, 'a', '~', 0, 2, 'b', '^', 0, 3, 'c', 0, 0})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3: %v", len(msgs), msgs)
	}
	if string(msgs[0].Content) != "a~" || string(msgs[1].Content) != "b^" || msgs[2].Mode != 3 {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestParseScript(t *testing.T) {
	script := `
# comment
0x16 "Hello ^D"

5	"Gr\u00fc\xdf \"x\""
0b1000_1111 "\xff\x00\x7f\xff"
0x01 "5€"
`
	msgs, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	want := []Message{
		{Mode: 0x16, Content: []byte("Hello ^D")},
		{Mode: 5, Content: []byte{'G', 'r', 0xFC, 0xDF, ' ', '"', 'x', '"'}},
		{Mode: 0x8F, Content: []byte{0xFF, 0x00, 0x7F, 0xFF}},
		{Mode: 0x01, Content: []byte{'5', 140}},
	}
	if len(msgs) != len(want) {
		t.Fatalf("got %d messages, want %d: %v", len(msgs), len(want), msgs)
	}
	for i := range want {
		if msgs[i].Mode != want[i].Mode || !bytes.Equal(msgs[i].Content, want[i].Content) {
			t.Fatalf("message %d = %s, want %s", i, msgs[i], want[i])
		}
	}
}

func TestParseScriptErrors(t *testing.T) {
	tcs := []struct {
		name   string
		script string
		err    error
	}{
		{name: "no content", script: "0x01\n", err: ErrScriptSyntax},
		{name: "bad mode", script: "zz \"a\"\n", err: ErrScriptSyntax},
		{name: "mode too large", script: "256 \"a\"\n", err: ErrScriptSyntax},
		{name: "unquoted", script: "1 hello\n", err: ErrScriptSyntax},
		{name: "no glyph", script: "1 \"漢\"\n", err: ErrScriptSyntax},
		{name: "zero mode", script: "0 \"a\"\n", err: ErrZeroMode},
		{name: "embedded zero", script: "1 \"a\\x00b\"\n", err: ErrEmbeddedZero},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tc.script))
			if !errors.Is(err, tc.err) {
				t.Fatalf("ParseScript = %v, want %v", err, tc.err)
			}
			if !strings.Contains(err.Error(), "line 1") {
				t.Fatalf("error %q does not name the line", err)
			}
		})
	}
}

func TestWriteScriptRoundTrip(t *testing.T) {
	msgs := []Message{
		{Mode: 0x16, Content: []byte("say \"hi\" \\o/")},
		{Mode: 0x05, Content: []byte{0xC3, 0xB6, 0xE4}},
		{Mode: 0x0A, Content: []byte{0xFF, 0x00, 0x0A, 0xFF}},
	}
	var buf bytes.Buffer
	if err := WriteScript(&buf, msgs); err != nil {
		t.Fatalf("WriteScript: %v", err)
	}
	got, err := ParseScript(&buf)
	if err != nil {
		t.Fatalf("ParseScript: %v\n%s", err, buf.String())
	}
	for i := range msgs {
		if got[i].Mode != msgs[i].Mode || !bytes.Equal(got[i].Content, msgs[i].Content) {
			t.Fatalf("message %d = %s, want %s", i, got[i], msgs[i])
		}
	}
}

func TestDefaultPlaylist(t *testing.T) {
	s := Default()
	msgs, err := s.Messages()
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) == 0 {
		t.Fatal("default playlist is empty")
	}
	if s.Len() > DefaultCapacity {
		t.Fatalf("default playlist is %d bytes, capacity %d", s.Len(), DefaultCapacity)
	}
	if s.ByteAt(s.Len()-1) != 0 {
		t.Fatal("default playlist has no end marker")
	}
}

func newTestVolume(t *testing.T, dev *tinyfs.MemBlockDevice) *Volume {
	t.Helper()
	v, err := OpenVolume(dev, true)
	if err != nil {
		t.Fatalf("OpenVolume: %v", err)
	}
	return v
}

func TestVolumeSaveLoad(t *testing.T) {
	dev := tinyfs.NewMemoryDevice(256, 4096, 64)
	v := newTestVolume(t, dev)

	if _, err := v.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on empty volume = %v, want ErrNotFound", err)
	}

	first := Default()
	if err := v.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, _ := Build([]Message{{Mode: 1, Content: []byte("replaced")}}, 0)
	if err := v.Save(second); err != nil {
		t.Fatalf("Save again: %v", err)
	}
	if err := v.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	v = newTestVolume(t, dev)
	defer v.Close()
	got, err := v.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got.Bytes(), second.Bytes()) {
		t.Fatalf("loaded % x, want % x", got.Bytes(), second.Bytes())
	}
}

func TestOpenVolumeWithoutFormat(t *testing.T) {
	dev := tinyfs.NewMemoryDevice(256, 4096, 64)
	if _, err := OpenVolume(dev, false); err == nil {
		t.Fatal("expected mount error on a blank device")
	}
}
