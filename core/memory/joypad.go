package memory

import "github.com/kaelstrom/pocketcore/core/bit"

// JoypadKey represents a key on the Gameboy joypad
type JoypadKey uint8

const (
	JoypadRight JoypadKey = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

// Joypad represents the Gameboy joypad, mapping button/dpad state onto the
// P1 register's select-line protocol: bits 4-5 pick which group of four
// buttons is visible in bits 0-3 (active low), bits 6-7 always read 1.
type Joypad struct {
	buttons uint8 // active-low state of A/B/Select/Start
	dpad    uint8 // active-low state of Right/Left/Up/Down
	line    uint8 // select bits as last written, bits 4-5

	// InterruptHandler is invoked whenever a selected input line falls from
	// 1 to 0, matching the P1 interrupt real hardware raises on keypress.
	InterruptHandler func()
}

// NewJoypad creates a new Joypad instance
func NewJoypad() *Joypad {
	return &Joypad{
		buttons: 0x0F,
		dpad:    0x0F,
	}
}

// Read returns the full P1 register: select bits as last written, unused
// bits 6-7 pinned high, and bits 0-3 the AND of every currently selected
// group (both groups are ANDed together if both are selected at once).
func (j *Joypad) Read() uint8 {
	result := uint8(0x0F)
	if j.line&0x10 == 0 {
		result &= j.dpad
	}
	if j.line&0x20 == 0 {
		result &= j.buttons
	}
	return j.line | 0xC0 | result
}

// Write sets the joypad line to be read
func (j *Joypad) Write(value uint8) {
	j.line = value & 0x30
}

// Press updates the joypad state when a key is pressed, firing the
// interrupt handler if the change is visible on a currently selected line.
func (j *Joypad) Press(key JoypadKey) {
	before := j.Read() & 0x0F
	switch key {
	case JoypadRight:
		j.dpad = bit.Reset(0, j.dpad)
	case JoypadLeft:
		j.dpad = bit.Reset(1, j.dpad)
	case JoypadUp:
		j.dpad = bit.Reset(2, j.dpad)
	case JoypadDown:
		j.dpad = bit.Reset(3, j.dpad)
	case JoypadA:
		j.buttons = bit.Reset(0, j.buttons)
	case JoypadB:
		j.buttons = bit.Reset(1, j.buttons)
	case JoypadSelect:
		j.buttons = bit.Reset(2, j.buttons)
	case JoypadStart:
		j.buttons = bit.Reset(3, j.buttons)
	}

	after := j.Read() & 0x0F
	if before&^after != 0 && j.InterruptHandler != nil {
		j.InterruptHandler()
	}
}

// Release updates the joypad state when a key is released
func (j *Joypad) Release(key JoypadKey) {
	switch key {
	case JoypadRight:
		j.dpad = bit.Set(0, j.dpad)
	case JoypadLeft:
		j.dpad = bit.Set(1, j.dpad)
	case JoypadUp:
		j.dpad = bit.Set(2, j.dpad)
	case JoypadDown:
		j.dpad = bit.Set(3, j.dpad)
	case JoypadA:
		j.buttons = bit.Set(0, j.buttons)
	case JoypadB:
		j.buttons = bit.Set(1, j.buttons)
	case JoypadSelect:
		j.buttons = bit.Set(2, j.buttons)
	case JoypadStart:
		j.buttons = bit.Set(3, j.buttons)
	}
}
