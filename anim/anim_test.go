package anim

import "testing"

func TestBuiltinImagesAreFramed(t *testing.T) {
	for i, img := range Builtin {
		if len(img) == 0 || img[len(img)-1] != End {
			t.Fatalf("animation %d is not terminated", i)
		}
		body := img[:len(img)-1]
		if len(body)%5 != 0 {
			t.Fatalf("animation %d has %d columns, want whole frames", i, len(body))
		}
		for _, b := range body {
			if b == End || b&0x80 != 0 {
				t.Fatalf("animation %d uses row 8 or the end marker inside its body", i)
			}
		}
	}
}

func TestLetterAddressesTable(t *testing.T) {
	tcs := []struct {
		letter byte
		ok     bool
	}{
		{'A', true},
		{'D', true},
		{'E', false},
		{'Z', false},
		{'~', false},
		{'@', false},
	}
	for _, tc := range tcs {
		img, ok := Builtin.Letter(tc.letter)
		if ok != tc.ok {
			t.Fatalf("Letter(%q) ok = %v, want %v", tc.letter, ok, tc.ok)
		}
		if ok && &img[0] != &Builtin[tc.letter-'A'][0] {
			t.Fatalf("Letter(%q) returned the wrong image", tc.letter)
		}
	}
}
