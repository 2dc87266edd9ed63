package core

import "testing"

func BenchmarkRunUntilFrame(b *testing.B) {
	e := New()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		e.RunUntilFrame()
	}
}

func BenchmarkRunAgainstTestROM(b *testing.B) {
	const testROMPath = "../test-roms/dmg-acid2.gb"

	e, err := NewWithFile(testROMPath)
	if err != nil {
		b.Skipf("test ROM not available: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		for frame := 0; frame < 100; frame++ {
			e.RunUntilFrame()
		}
	}
}
