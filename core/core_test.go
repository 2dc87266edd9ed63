package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_StartsWithCleanState(t *testing.T) {
	e := New()

	assert.Zero(t, e.GetFrameCount())
	assert.Zero(t, e.GetInstructionCount())
	assert.NotNil(t, e.GetCPU())
	assert.NotNil(t, e.GetMMU())
	assert.NotNil(t, e.GetCurrentFrame())
}

func TestNewWithFile_MissingROM(t *testing.T) {
	_, err := NewWithFile("../does-not-exist.gb")
	assert.Error(t, err)
}

func TestRunUntilFrame_AdvancesExactlyOneFrame(t *testing.T) {
	e := New()

	e.RunUntilFrame()

	assert.Equal(t, uint64(1), e.GetFrameCount())
	assert.Greater(t, e.GetInstructionCount(), uint64(0))
}

func TestRunUntilFrame_CountsMultipleFrames(t *testing.T) {
	e := New()

	for i := 0; i < 3; i++ {
		e.RunUntilFrame()
	}

	assert.Equal(t, uint64(3), e.GetFrameCount())
}

func TestRunInstruction_AdvancesInstructionCount(t *testing.T) {
	e := New()

	cycles := e.RunInstruction()

	assert.Greater(t, cycles, 0)
	assert.Equal(t, uint64(1), e.GetInstructionCount())
}

func TestHandleKeyPress_IsVisibleOnJoypadRegister(t *testing.T) {
	e := New()

	e.mem.Write(0xFF00, 0x20) // select the d-pad group (bit 4 low)
	before := e.mem.Read(0xFF00)

	e.HandleKeyPress(0) // memory.JoypadRight, bit 0 of the d-pad group
	after := e.mem.Read(0xFF00)
	e.HandleKeyRelease(0)

	assert.Equal(t, before&^0x01, after)
}

func TestRunAgainstTestROM(t *testing.T) {
	const testROMPath = "../test-roms/dmg-acid2.gb"

	e, err := NewWithFile(testROMPath)
	if err != nil {
		t.Skipf("test ROM not available: %v", err)
	}

	for i := 0; i < 60; i++ {
		e.RunUntilFrame()
	}

	assert.Equal(t, uint64(60), e.GetFrameCount())
}
