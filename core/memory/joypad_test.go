package memory

import "testing"

func TestJoypad_SelectAndRead(t *testing.T) {
	j := NewJoypad()

	j.Write(0x20) // select dpad group (bit 4 low)
	if got := j.Read(); got&0x0F != 0x0F {
		t.Errorf("Read() with nothing pressed = 0x%02X; want low nibble 0x0F", got)
	}

	j.Press(JoypadUp)
	got := j.Read()
	if got&0x04 != 0 {
		t.Errorf("Read() after pressing Up = 0x%02X; bit 2 should be clear", got)
	}

	j.Release(JoypadUp)
	if got := j.Read(); got&0x04 == 0 {
		t.Errorf("Read() after releasing Up = 0x%02X; bit 2 should be set", got)
	}
}

func TestJoypad_UnusedBitsAlwaysSet(t *testing.T) {
	j := NewJoypad()
	j.Write(0x00)
	if got := j.Read(); got&0xC0 != 0xC0 {
		t.Errorf("Read() = 0x%02X; bits 6-7 should always read 1", got)
	}
}

func TestJoypad_InterruptFiresOnSelectedTransition(t *testing.T) {
	j := NewJoypad()
	fired := 0
	j.InterruptHandler = func() { fired++ }

	j.Write(0x20) // select dpad group
	j.Press(JoypadDown)
	if fired != 1 {
		t.Errorf("interrupt fired %d times; want 1", fired)
	}

	j.Release(JoypadDown)
	if fired != 1 {
		t.Errorf("release should not fire the interrupt, fired=%d", fired)
	}
}

func TestJoypad_InterruptDoesNotFireOnUnselectedLine(t *testing.T) {
	j := NewJoypad()
	fired := 0
	j.InterruptHandler = func() { fired++ }

	j.Write(0x10) // select button group only, dpad unselected
	j.Press(JoypadUp)
	if fired != 0 {
		t.Errorf("pressing an unselected line should not fire the interrupt, fired=%d", fired)
	}
}
