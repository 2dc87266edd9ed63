package memory

import "github.com/kaelstrom/pocketcore/core/bit"

const titleLength = 11

const (
	entryPointAddress       = 0x100
	logoAddress             = 0x104
	titleAddress            = 0x134
	manufacturerCodeAddress = 0x13F
	cgbFlagAddress          = 0x143
	newLicenseCodeAddress   = 0x144
	sgbFlagAddress          = 0x146
	cartridgeTypeAddress    = 0x147
	romSizeAddress          = 0x148
	ramSizeAddress          = 0x149
	destinationCodeAddress  = 0x14A
	oldLicenseCodeAddress   = 0x14B
	versionNumberAddress    = 0x14C
	headerChecksumAddress   = 0x14D
	globalChecksumAddress   = 0x14E
)

// MBCType identifies which memory bank controller a cartridge header
// requests, decoded from the cartridge type byte at 0x147.
type MBCType uint8

const (
	NoMBCType MBCType = iota
	MBC1Type
	MBC1MultiType
	MBC2Type
	MBC3Type
	MBC5Type
	MBCUnknownType
)

// ramBankCounts maps the RAM size byte at 0x149 to a bank count, 8KiB per
// bank. Code 0x01 (2KB) predates the banked layout and is treated as a
// single partial bank.
var ramBankCounts = map[uint8]uint8{
	0x00: 0,
	0x01: 1,
	0x02: 1,
	0x03: 4,
	0x04: 16,
	0x05: 8,
}

type Cartridge struct {
	data []byte

	title          string
	headerChecksum uint16
	globalChecksum uint16
	version        uint8
	cartType       uint8
	romSize        uint8
	ramSize        uint8

	mbcType      MBCType
	hasBattery   bool
	hasRTC       bool
	hasRumble    bool
	ramBankCount uint8
}

// NewCartridge creates an empty cartridge, useful only for debugging purposes.
func NewCartridge() *Cartridge {
	return &Cartridge{
		data:    make([]byte, 0x8000),
		mbcType: NoMBCType,
	}
}

// NewCartridgeWithData initializes a new Cartridge from a slice of bytes,
// decoding the header fields needed to pick and size an MBC.
func NewCartridgeWithData(bytes []byte) *Cartridge {
	cart := &Cartridge{
		data:           make([]byte, len(bytes)),
		title:          cleanGameboyTitle(bytes[titleAddress : titleAddress+titleLength]),
		headerChecksum: bit.Combine(bytes[headerChecksumAddress], bytes[headerChecksumAddress+1]),
		globalChecksum: bit.Combine(bytes[globalChecksumAddress], bytes[globalChecksumAddress+1]),
		version:        bytes[versionNumberAddress],
		cartType:       bytes[cartridgeTypeAddress],
		romSize:        bytes[romSizeAddress],
		ramSize:        bytes[ramSizeAddress],
	}

	copy(cart.data, bytes)
	cart.decodeMBC()

	return cart
}

// decodeMBC maps the cartridge type byte to an MBC family plus the
// auxiliary hardware (battery/RTC/rumble) pandocs documents for that byte.
func (c *Cartridge) decodeMBC() {
	c.ramBankCount = ramBankCounts[c.ramSize]

	switch c.cartType {
	case 0x00, 0x08, 0x09:
		c.mbcType = NoMBCType
	case 0x01, 0x02, 0x03:
		c.mbcType = MBC1Type
		c.hasBattery = c.cartType == 0x03
	case 0x05, 0x06:
		c.mbcType = MBC2Type
		c.hasBattery = c.cartType == 0x06
		c.ramBankCount = 1 // the 512x4bit built-in RAM, sized separately by the MBC
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		c.mbcType = MBC3Type
		c.hasRTC = c.cartType == 0x0F || c.cartType == 0x10
		c.hasBattery = c.cartType == 0x0F || c.cartType == 0x10 || c.cartType == 0x13
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		c.mbcType = MBC5Type
		c.hasRumble = c.cartType == 0x1C || c.cartType == 0x1D || c.cartType == 0x1E
		c.hasBattery = c.cartType == 0x1B || c.cartType == 0x1E
	default:
		c.mbcType = MBCUnknownType
	}
}

// ReadByte reads a byte at the specified address. Does not check bounds, so the caller must make sure the
// address is valid for the cartridge.
func (c Cartridge) ReadByte(addr uint16) uint8 {
	return c.data[addr]
}

// Title returns the cleaned, human-readable cartridge title from the header.
func (c Cartridge) Title() string {
	return c.title
}
