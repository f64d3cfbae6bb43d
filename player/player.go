// Package player decodes the message store into drawing operations.
//
// A message is a mode byte followed by escape-coded content and a zero
// terminator. Messages are stored back to back; a zero mode byte after a
// terminator sends playback back to the first message.
//
// Content escapes:
//
//	'~' X      animation X-'A'; '~' '~' and unknown letters draw nothing
//	0xFF ... 0xFF  raw display columns, nothing inside is interpreted
//	'^' X      character X+63; '^' '^' is a literal '^'
//
// A blank column separates consecutive units of a message.
package player

import (
	"dotmatrix/anim"
	"dotmatrix/display"
)

// FirstMessage is the store address of the first message.
const FirstMessage = 0

const (
	escAnimation = '~'
	escDirect    = 0xFF
	escSpecial   = '^'

	specialOffset = 63
	spacing       = 0x00
)

// Backend is the drawing surface messages are rendered to.
type Backend interface {
	Clear()
	PrintChar(code byte)
	PrintByte(col byte)
	DisplayImage(img []byte)
	SetScrolling(inc uint8, dir display.Direction, delay uint8)
}

// Source is a byte-addressable message store. Reads past Len return 0.
type Source interface {
	ByteAt(addr int) byte
	Len() int
}

// Player renders messages. It is used from the main loop only.
type Player struct {
	backend Backend
	store   Source
	anims   anim.Table
	speed   *Speed
}

// New returns a player reading from store. A nil anims uses anim.Builtin.
func New(backend Backend, store Source, anims anim.Table, speed *Speed) *Player {
	if anims == nil {
		anims = anim.Builtin
	}
	return &Player{backend: backend, store: store, anims: anims, speed: speed}
}

// ApplyMode decodes b, programs the backend scrolling and publishes the
// scroll speed.
func (p *Player) ApplyMode(b byte) Mode {
	m := DecodeMode(b)
	p.backend.SetScrolling(m.Increment(), m.Direction(), m.DelaySteps())
	if p.speed != nil {
		p.speed.Store(m.SpeedTicks())
	}
	return m
}

// Play renders the message at cursor and returns the address of the message
// to play next.
//
// Malformed content never aborts playback: unknown animations and glyphs are
// skipped, an escape directly before the terminator ends the message, and a
// message running off the end of the store ends there.
func (p *Player) Play(cursor int) int {
	r := reader{src: p.store, addr: cursor}

	p.ApplyMode(r.next())
	p.backend.Clear()

	ch := r.next()
	for ch != 0 {
		switch ch {
		case escAnimation:
			ch = r.next()
			if ch == 0 {
				return p.after(r.addr)
			}
			if ch != escAnimation {
				if img, ok := p.anims.Letter(ch); ok {
					p.backend.DisplayImage(img)
				}
			}
		case escDirect:
			ch = r.next()
			for ch != escDirect && !r.exhausted() {
				p.backend.PrintByte(ch)
				ch = r.next()
			}
		default:
			if ch == escSpecial {
				ch = r.next()
				if ch == 0 {
					return p.after(r.addr)
				}
				if ch != escSpecial {
					ch += specialOffset
				}
			}
			p.backend.PrintChar(ch)
		}

		ch = r.next()
		if ch != 0 {
			p.backend.PrintByte(spacing)
		}
	}
	return p.after(r.addr)
}

// after returns addr when a message starts there, FirstMessage otherwise.
func (p *Player) after(addr int) int {
	if p.store.ByteAt(addr) != 0 {
		return addr
	}
	return FirstMessage
}

type reader struct {
	src  Source
	addr int
}

func (r *reader) next() byte {
	b := r.src.ByteAt(r.addr)
	r.addr++
	return b
}

// exhausted reports whether the last byte read lay past the end of the store.
func (r *reader) exhausted() bool { return r.addr > r.src.Len() }
