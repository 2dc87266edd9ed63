package audio

import (
	"github.com/kaelstrom/pocketcore/core/addr"
	"github.com/kaelstrom/pocketcore/core/bit"
)

// APU is the register space of a DMG Game Boy's Audio Processing Unit.
// Sound generation was never implemented upstream, so this is deliberately a
// passive byte store: it preserves correct read-back masking and the power-off
// write-lockout behavior so a ROM that probes or pokes the sound registers
// doesn't observe corrupted state, but it produces no audio and runs no
// channel timers. Tick exists only so the memory bus can drive it unconditionally.
type APU struct {
	enabled bool

	NR10, NR11, NR12, NR13, NR14 uint8 // Channel 1
	NR21, NR22, NR23, NR24       uint8 // Channel 2
	NR30, NR31, NR32, NR33, NR34 uint8 // Channel 3
	NR41, NR42, NR43, NR44       uint8 // Channel 4
	NR50, NR51, NR52             uint8 // Global controls

	waveRAM [waveRAMSize]uint8
}

func New() *APU {
	return &APU{enabled: true}
}

// Tick is a no-op: no channel or frame sequencer state needs advancing.
func (a *APU) Tick(cycles int) {}

func (a *APU) ReadRegister(address uint16) uint8 {
	switch address {
	case addr.NR10:
		return a.NR10 | 0b1000_0000
	case addr.NR11:
		return a.NR11 | 0b0011_1111
	case addr.NR12:
		return a.NR12
	case addr.NR13:
		return 0xFF // write-only reg
	case addr.NR14:
		return a.NR14 | 0b1011_1111
	case addr.NR21:
		return a.NR21 | 0b0011_1111
	case addr.NR22:
		return a.NR22
	case addr.NR23:
		return 0xFF // write-only reg
	case addr.NR24:
		return a.NR24 | 0b1011_1111
	case addr.NR30:
		return a.NR30 | 0b0111_1111
	case addr.NR31:
		return 0xFF // write-only reg
	case addr.NR32:
		return a.NR32 | 0b1001_1111
	case addr.NR33:
		return 0xFF // write-only reg
	case addr.NR34:
		return a.NR34 | 0b1011_1111
	case addr.NR41:
		return 0xFF // write-only reg
	case addr.NR42:
		return a.NR42
	case addr.NR43:
		return a.NR43
	case addr.NR44:
		return a.NR44 | 0b1011_1111
	case addr.NR50:
		return a.NR50
	case addr.NR51:
		return a.NR51
	case addr.NR52:
		// bit 7 = power, bits 6-4 always read 1, bits 3-0 would be channel
		// active status on real hardware; with no channels running they stay 0.
		status := uint8(0b0111_0000)
		if a.enabled {
			status = bit.Set(7, status)
		}
		return status
	}
	if address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd {
		return a.waveRAM[address-addr.WaveRAMStart]
	}
	return 0xFF
}

// WriteRegister stores the value of the given register/memory unmodified.
// When the APU is powered off (NR52 bit 7 clear), writes to anything but
// NR52 itself and wave RAM are ignored, matching real hardware.
func (a *APU) WriteRegister(address uint16, value uint8) {
	isInWaveRAM := address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd

	if !a.enabled && address != addr.NR52 && !isInWaveRAM {
		return
	}

	switch address {
	case addr.NR10:
		a.NR10 = value
	case addr.NR11:
		a.NR11 = value
	case addr.NR12:
		a.NR12 = value
	case addr.NR13:
		a.NR13 = value
	case addr.NR14:
		a.NR14 = value
	case addr.NR21:
		a.NR21 = value
	case addr.NR22:
		a.NR22 = value
	case addr.NR23:
		a.NR23 = value
	case addr.NR24:
		a.NR24 = value
	case addr.NR30:
		a.NR30 = value
	case addr.NR31:
		a.NR31 = value
	case addr.NR32:
		a.NR32 = value
	case addr.NR33:
		a.NR33 = value
	case addr.NR34:
		a.NR34 = value
	case addr.NR41:
		a.NR41 = value
	case addr.NR42:
		a.NR42 = value
	case addr.NR43:
		a.NR43 = value
	case addr.NR44:
		a.NR44 = value
	case addr.NR50:
		a.NR50 = value
	case addr.NR51:
		a.NR51 = value
	case addr.NR52:
		a.enabled = bit.IsSet(7, value)
		if !a.enabled {
			// powering off clears every register; wave RAM is kept
			*a = APU{waveRAM: a.waveRAM}
		}
	default:
		// ignore
	}

	if isInWaveRAM {
		a.waveRAM[address-addr.WaveRAMStart] = value
	}
}
