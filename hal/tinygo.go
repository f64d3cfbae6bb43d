//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"

	"tinygo.org/x/tinyfs"
)

// Matrix wiring: the seven row anodes are driven high to light a row, the
// five column cathodes are pulled low to select a column.
var (
	rowPins    = [MatrixRows]machine.Pin{machine.GP2, machine.GP3, machine.GP4, machine.GP5, machine.GP6, machine.GP7, machine.GP8}
	columnPins = [MatrixColumns]machine.Pin{machine.GP9, machine.GP10, machine.GP11, machine.GP12, machine.GP13}
	buttonPin  = machine.GP14
)

type tinyGoHAL struct {
	logger *uartLogger
	matrix *pinMatrix
	button *pinButtonPort
	power  *pinPower
	flash  tinyfs.BlockDevice
	t      *tinyGoTime
}

// New returns a Pico (RP2040) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	m := &pinMatrix{}
	for _, p := range rowPins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	for _, p := range columnPins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	buttonPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	btn := &pinButtonPort{pin: buttonPin}

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		matrix: m,
		button: btn,
		power:  newPinPower(buttonPin),
		flash:  newRP2Flash(),
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger            { return h.logger }
func (h *tinyGoHAL) Matrix() Matrix            { return h.matrix }
func (h *tinyGoHAL) Button() Button            { return h.button }
func (h *tinyGoHAL) Power() Power              { return h.power }
func (h *tinyGoHAL) Flash() tinyfs.BlockDevice { return h.flash }
func (h *tinyGoHAL) Time() Time                { return h.t }

type pinMatrix struct {
	last int
}

func (m *pinMatrix) DriveColumn(col int, pattern uint8) {
	columnPins[m.last].High()
	if col < 0 || col >= MatrixColumns {
		return
	}
	for row, p := range rowPins {
		p.Set(pattern&(1<<row) != 0)
	}
	columnPins[col].Low()
	m.last = col
}

type pinButtonPort struct {
	pin machine.Pin
}

func (b *pinButtonPort) Level() uint8 {
	if b.pin.Get() {
		return 0xFF
	}
	return ^ButtonMask
}
