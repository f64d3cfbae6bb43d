package display

import (
	"testing"

	"dotmatrix/fonts/font5x7"
)

type driven struct {
	col     int
	pattern uint8
}

type recordOutput struct {
	calls []driven
}

func (r *recordOutput) DriveColumn(col int, pattern uint8) {
	r.calls = append(r.calls, driven{col: col, pattern: pattern})
}

func fill(d *Display, n int) {
	for i := 1; i <= n; i++ {
		d.PrintByte(byte(i))
	}
}

func TestPrintCharIsProportional(t *testing.T) {
	d := New(nil)

	d.PrintChar('A')
	if got := d.Cursor(); got != 5 {
		t.Fatalf("cursor after 'A' = %d, want 5", got)
	}
	d.PrintChar('!')
	if got := d.Cursor(); got != 6 {
		t.Fatalf("cursor after '!' = %d, want 6", got)
	}

	want := append(append([]byte(nil), font5x7.Columns('A')...), font5x7.Columns('!')...)
	got := d.Content()
	if string(got) != string(want) {
		t.Fatalf("content = % x, want % x", got, want)
	}
}

func TestPrintCharMapsLatin1Umlauts(t *testing.T) {
	d := New(nil)
	d.PrintChar(0xE4) // ä

	want := font5x7.Columns(font5x7.LowerAUml)
	if got := d.Content(); string(got) != string(want) {
		t.Fatalf("content = % x, want % x", got, want)
	}
}

func TestPrintCharIgnoresUnknownCodes(t *testing.T) {
	d := New(nil)
	for _, code := range []byte{0x00, 0x0A, 0x1F, 0xF0} {
		d.PrintChar(code)
	}
	if got := d.Cursor(); got != 0 {
		t.Fatalf("cursor = %d, want 0", got)
	}
}

func TestPrintByteStopsAtMemoryEnd(t *testing.T) {
	d := New(nil)
	for i := 0; i < MemorySize+10; i++ {
		d.PrintByte(0x55)
	}
	if got := d.Cursor(); got != MemorySize {
		t.Fatalf("cursor = %d, want %d", got, MemorySize)
	}
	d.PrintChar('A')
	if got := d.Cursor(); got != MemorySize {
		t.Fatalf("cursor after char = %d, want %d", got, MemorySize)
	}
}

func TestDisplayImageStopsAtEndMarker(t *testing.T) {
	d := New(nil)
	d.DisplayImage([]byte{0x01, 0x02, ImageEnd, 0x03})

	if got := d.Content(); string(got) != "\x01\x02" {
		t.Fatalf("content = % x, want 01 02", got)
	}
}

func TestClearResetsCursorAndWindow(t *testing.T) {
	d := New(nil)
	fill(d, 12)
	d.SetScrolling(1, Forward, 0)
	d.Scroll()
	d.Scroll()

	d.Clear()

	if got := d.Cursor(); got != 0 {
		t.Fatalf("cursor = %d, want 0", got)
	}
	if got := d.Window(); got != [Columns]byte{} {
		t.Fatalf("window = % x, want blank", got)
	}
}

func TestScrollForwardPausesThenRestarts(t *testing.T) {
	d := New(nil)
	fill(d, 10)
	d.SetScrolling(1, Forward, 2)

	for step := 1; step <= 5; step++ {
		if end := d.Scroll(); end {
			t.Fatalf("step %d reported end of range", step)
		}
		if got := d.Window()[0]; got != byte(step+1) {
			t.Fatalf("step %d: first visible column = %d, want %d", step, got, step+1)
		}
	}

	// two pause steps, then the restart step
	for i := 0; i < 3; i++ {
		if end := d.Scroll(); !end {
			t.Fatalf("pause step %d did not report end of range", i)
		}
		if i < 2 && d.Window()[0] != 6 {
			t.Fatalf("window moved during pause: % x", d.Window())
		}
	}
	if got := d.Window()[0]; got != 1 {
		t.Fatalf("after restart first column = %d, want 1", got)
	}
	if end := d.Scroll(); end {
		t.Fatal("first step after restart reported end of range")
	}
}

func TestScrollBackwardStartsAtRightEnd(t *testing.T) {
	d := New(nil)
	fill(d, 10)
	d.SetScrolling(1, Backward, 3)

	if end := d.Scroll(); !end {
		t.Fatal("first backward step should hit the left end")
	}
	if got := d.Window()[0]; got != 6 {
		t.Fatalf("first column = %d, want 6", got)
	}
	d.Scroll()
	if got := d.Window()[0]; got != 5 {
		t.Fatalf("first column = %d, want 5", got)
	}
}

func TestScrollBidirectionalTurnsAround(t *testing.T) {
	d := New(nil)
	fill(d, 7)
	d.SetScrolling(1, Bidirectional, 0)

	var firsts []byte
	for i := 0; i < 6; i++ {
		d.Scroll()
		firsts = append(firsts, d.Window()[0])
	}
	// right end, turn around, left end, turn around
	want := []byte{2, 3, 3, 2, 1, 1}
	if string(firsts) != string(want) {
		t.Fatalf("first columns = %v, want %v", firsts, want)
	}
}

func TestScrollShortContentStaysPut(t *testing.T) {
	d := New(nil)
	d.PrintChar('!')
	d.SetScrolling(1, Forward, 0)

	for i := 0; i < 4; i++ {
		if end := d.Scroll(); !end {
			t.Fatal("short content should always be at the end of range")
		}
	}
	if got := d.Window()[0]; got != 0x5F {
		t.Fatalf("first column = %#x, want 0x5f", got)
	}
}

func TestScrollIncrementZeroHolds(t *testing.T) {
	d := New(nil)
	fill(d, 10)
	d.SetScrolling(0, Forward, 0)

	for i := 0; i < 3; i++ {
		d.Scroll()
	}
	if got := d.Window()[0]; got != 1 {
		t.Fatalf("first column = %d, want 1", got)
	}
}

func TestRefreshCyclesColumns(t *testing.T) {
	out := &recordOutput{}
	d := New(out)
	fill(d, 5)

	for i := 0; i < Columns*2; i++ {
		d.Refresh()
	}

	if len(out.calls) != Columns*2 {
		t.Fatalf("drove %d columns, want %d", len(out.calls), Columns*2)
	}
	for i, c := range out.calls {
		wantCol := (i + 1) % Columns
		if c.col != wantCol || c.pattern != byte(wantCol+1) {
			t.Fatalf("call %d = %+v, want col %d pattern %d", i, c, wantCol, wantCol+1)
		}
	}
}

func TestSetScrollingLimitsIncrement(t *testing.T) {
	d := New(nil)
	d.SetScrolling(0x21, Direction(7), 0)
	if d.inc != 1 {
		t.Fatalf("inc = %d, want 1", d.inc)
	}
	if d.dir != Forward {
		t.Fatalf("dir = %v, want forward", d.dir)
	}
}
