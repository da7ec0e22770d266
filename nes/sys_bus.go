package nes

import "fmt"

// Bus is the memory-mapped router tying the CPU address space to
// internal RAM, the PPU/APU register windows, the controller ports,
// OAM DMA, and the cartridge. All CPU cycle accounting funnels through
// Tick, which is the only thing that advances the PPU, guaranteeing
// the fixed 3:1 PPU:CPU clock ratio described by the bus contract.
type Bus struct {
	Cartridge *Cartridge
	RAM       *RAM
	PPU       *PPU
	APU       *APU
	Ctrl1     *Controller

	cycles uint64
}

// busFault carries a fatal, unmodelled-access error out of Read/Write
// through a panic so the CPU's instruction loop doesn't need an error
// return on every single memory access. CPU.Step recovers it.
type busFault struct{ err error }

func (b *Bus) fault(err error) {
	panic(busFault{err})
}

// Tick advances the shared CPU cycle counter by cycles and the PPU by
// 3*cycles. Every CPU cycle charged anywhere in the emulator must flow
// through this function.
func (b *Bus) Tick(cycles uint64) {
	b.cycles += cycles
	b.PPU.Tick(cycles * 3)
}

// Cycles reports the running CPU cycle count, used by OAM DMA to
// decide the odd/even alignment penalty.
func (b *Bus) Cycles() uint64 {
	return b.cycles
}

func (b *Bus) Read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.RAM.Read(address & 0x07FF)
	case address < 0x4000:
		return b.PPU.ReadRegister(0x2000 + address&0x2007 - 0x2000)
	case address == 0x4015:
		return b.APU.ReadStatus()
	case address == 0x4016:
		return b.Ctrl1.Read()
	case address == 0x4017:
		return 0
	case address < 0x4020:
		return 0xFF
	case address < 0x8000:
		b.fault(fmt.Errorf("nes: read $%04X: %w", address, ErrUnsupportedAddress))
		return 0
	default:
		return b.Cartridge.Mapper.ReadPRG(address)
	}
}

func (b *Bus) Write(address uint16, v byte) {
	switch {
	case address < 0x2000:
		b.RAM.Write(address&0x07FF, v)
	case address < 0x4000:
		b.PPU.WriteRegister(0x2000+address&0x2007-0x2000, v)
	case address == 0x4014:
		b.oamDMA(v)
	case address == 0x4016:
		b.Ctrl1.Write(v)
	case address <= 0x4013, address == 0x4015, address == 0x4017:
		b.APU.WriteRegister(address, v)
	case address < 0x4020:
		// unassigned I/O range, silently ignored
	case address < 0x8000:
		b.fault(fmt.Errorf("nes: write $%04X: %w", address, ErrUnsupportedAddress))
	default:
		b.Cartridge.Mapper.WritePRG(address, v)
	}
}

// oamDMA implements the $4014 trigger: charges an alignment cycle (1 if
// the current CPU cycle count is even, else 2) plus 256*2 cycles, and
// copies 256 consecutive bytes starting at page<<8 into OAM through the
// PPU's $2004 write path.
func (b *Bus) oamDMA(page byte) {
	align := uint64(1)
	if b.cycles%2 != 0 {
		align = 2
	}

	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAMData(b.Read(base + uint16(i)))
	}

	b.Tick(align + 256*2)
}

// ReadAddress reads a little-endian 16-bit value at address, address+1.
func (b *Bus) ReadAddress(address uint16) uint16 {
	lo := b.Read(address)
	hi := b.Read(address + 1)
	return uint16(hi)<<8 | uint16(lo)
}
