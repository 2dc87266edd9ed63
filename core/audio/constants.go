package audio

// waveRAMSize is the size of wave pattern RAM in bytes (16 bytes = 32 nibbles).
const waveRAMSize = 16
