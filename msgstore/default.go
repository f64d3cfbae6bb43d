package msgstore

import (
	"fmt"
	"strings"
)

// DefaultCapacity is the size of the message EEPROM on the AVR board.
const DefaultCapacity = 512

const defaultScript = `
# greeting, then one of each content kind
0x16 "Hello ^D"
0x0e "~A"
0xb5 "Sch\xf6ne Gr\xfc\xdfe!"
0x0c "~D~D"
0x26 "22^LC ^@ ~C"
0x0a "\xff\x7f\x41\x5d\x41\x7f\xff"
0x34 "^A I love Go ^A"
`

// Default returns the playlist used when no store image is provisioned.
func Default() *Store {
	msgs, err := ParseScript(strings.NewReader(defaultScript))
	if err != nil {
		panic(fmt.Sprintf("msgstore: default playlist: %v", err))
	}
	s, err := Build(msgs, DefaultCapacity)
	if err != nil {
		panic(fmt.Sprintf("msgstore: default playlist: %v", err))
	}
	return s
}
