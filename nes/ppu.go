package nes

import "image/color"

// palette is the canonical NES color lookup table: one RGB color per
// 6-bit palette index.
var palette = [64]color.RGBA{
	{0x7C, 0x7C, 0x7C, 0xFF}, {0x00, 0x00, 0xFC, 0xFF},
	{0x00, 0x00, 0xBC, 0xFF}, {0x44, 0x28, 0xBC, 0xFF},
	{0x94, 0x00, 0x84, 0xFF}, {0xA8, 0x00, 0x20, 0xFF},
	{0xA8, 0x10, 0x00, 0xFF}, {0x88, 0x14, 0x00, 0xFF},
	{0x50, 0x30, 0x00, 0xFF}, {0x00, 0x78, 0x00, 0xFF},
	{0x00, 0x68, 0x00, 0xFF}, {0x00, 0x58, 0x00, 0xFF},
	{0x00, 0x40, 0x58, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0xBC, 0xBC, 0xBC, 0xFF}, {0x00, 0x78, 0xF8, 0xFF},
	{0x00, 0x58, 0xF8, 0xFF}, {0x68, 0x44, 0xFC, 0xFF},
	{0xD8, 0x00, 0xCC, 0xFF}, {0xE4, 0x00, 0x58, 0xFF},
	{0xF8, 0x38, 0x00, 0xFF}, {0xE4, 0x5C, 0x10, 0xFF},
	{0xAC, 0x7C, 0x00, 0xFF}, {0x00, 0xB8, 0x00, 0xFF},
	{0x00, 0xA8, 0x00, 0xFF}, {0x00, 0xA8, 0x44, 0xFF},
	{0x00, 0x88, 0x88, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0xF8, 0xF8, 0xF8, 0xFF}, {0x3C, 0xBC, 0xFC, 0xFF},
	{0x68, 0x88, 0xFC, 0xFF}, {0x98, 0x78, 0xF8, 0xFF},
	{0xF8, 0x78, 0xF8, 0xFF}, {0xF8, 0x58, 0x98, 0xFF},
	{0xF8, 0x78, 0x58, 0xFF}, {0xFC, 0xA0, 0x44, 0xFF},
	{0xF8, 0xB8, 0x00, 0xFF}, {0xB8, 0xF8, 0x18, 0xFF},
	{0x58, 0xD8, 0x54, 0xFF}, {0x58, 0xF8, 0x98, 0xFF},
	{0x00, 0xE8, 0xD8, 0xFF}, {0x78, 0x78, 0x78, 0xFF},
	{0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0xFC, 0xFC, 0xFC, 0xFF}, {0xA4, 0xE4, 0xFC, 0xFF},
	{0xB8, 0xB8, 0xF8, 0xFF}, {0xD8, 0xB8, 0xF8, 0xFF},
	{0xF8, 0xB8, 0xF8, 0xFF}, {0xF8, 0xA4, 0xC0, 0xFF},
	{0xF0, 0xD0, 0xB0, 0xFF}, {0xFC, 0xE0, 0xA8, 0xFF},
	{0xF8, 0xD8, 0x78, 0xFF}, {0xD8, 0xF8, 0x78, 0xFF},
	{0xB8, 0xF8, 0xB8, 0xFF}, {0xB8, 0xF8, 0xD8, 0xFF},
	{0x00, 0xFC, 0xFC, 0xFF}, {0xF8, 0xD8, 0xF8, 0xFF},
	{0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
}

// PPU register addresses, CPU-visible.
const (
	regPPUCTRL   uint16 = 0x2000
	regPPUMASK   uint16 = 0x2001
	regPPUSTATUS uint16 = 0x2002
	regOAMADDR   uint16 = 0x2003
	regOAMDATA   uint16 = 0x2004
	regPPUSCROLL uint16 = 0x2005
	regPPUADDR   uint16 = 0x2006
	regPPUDATA   uint16 = 0x2007
)

// Ctrl holds the bits written to $2000.
type Ctrl byte

const (
	CtrlNametableMask   Ctrl = 0x03
	CtrlIncrement32     Ctrl = 1 << 2
	CtrlSpriteTable     Ctrl = 1 << 3
	CtrlBackgroundTable Ctrl = 1 << 4
	CtrlSpriteSize8x16  Ctrl = 1 << 5
	CtrlMasterSlave     Ctrl = 1 << 6
	CtrlNMIEnable       Ctrl = 1 << 7
)

// Mask holds the bits written to $2001.
type Mask byte

const (
	MaskGrayscale      Mask = 1 << 0
	MaskShowLeftBG     Mask = 1 << 1
	MaskShowLeftSprite Mask = 1 << 2
	MaskShowBackground Mask = 1 << 3
	MaskShowSprites    Mask = 1 << 4
)

// Status holds the bits read from $2002.
type Status byte

const (
	StatusOverflow Status = 1 << 5
	StatusSprite0  Status = 1 << 6
	StatusVBlank   Status = 1 << 7
)

const (
	nametableSize = 2048
	oamSize       = 256
	paletteSize   = 32
)

// PPU renders background and sprites to a 256x240 framebuffer, tracks
// scroll/vblank state and raises NMIs on the CPU. It implements a
// simplified per-scanline raster: rather than a cycle-accurate per-dot
// pipeline with live v/t/x/w scroll registers, each visible scanline
// is synthesised in one pass from the current scroll position and the
// four nametable quadrants, re-resolved on every access instead of
// cached as pointers.
type PPU struct {
	Cartridge *Cartridge

	Ctrl   Ctrl
	Mask   Mask
	Status Status

	oamAddr byte
	oam     [oamSize]byte

	nametable  [nametableSize]byte
	paletteRAM [paletteSize]byte

	vramAddr    uint16
	writeToggle bool
	readBuffer  byte

	scrollX, scrollY byte

	cycle    int // 0-340
	scanline int // 0-261
	frame    uint64

	buffer [256 * 240]color.RGBA

	nmiPending bool
}

// NewPPU constructs a PPU bound to cartridge c. c may be nil until a
// cartridge is loaded; Reset must be called again once it is.
func NewPPU(c *Cartridge) *PPU {
	p := &PPU{Cartridge: c}
	p.Reset()
	return p
}

// Reset returns the PPU to its post-load state: registers zeroed, the
// write-toggle latch cleared, at the start of the pre-render scanline.
func (p *PPU) Reset() {
	p.Ctrl = 0
	p.Mask = 0
	p.Status = 0
	p.oamAddr = 0
	p.vramAddr = 0
	p.writeToggle = false
	p.readBuffer = 0
	p.scrollX = 0
	p.scrollY = 0
	p.cycle = 0
	p.scanline = 261
	p.frame = 0
	p.nmiPending = false
}

// Frame reports the number of frames completed so far; Console.StepFrame
// uses a change in this value to know when to stop.
func (p *PPU) Frame() uint64 { return p.frame }

// Buffer returns the most recently published 256x240 framebuffer.
func (p *PPU) Buffer() *[256 * 240]color.RGBA { return &p.buffer }

// TakeNMI reports and clears a pending NMI request. The CPU consults
// this once per step, never mid-instruction, matching the delivery
// ordering: an NMI raised by the PPU is taken at the start of the next
// CPU step.
func (p *PPU) TakeNMI() bool {
	v := p.nmiPending
	p.nmiPending = false
	return v
}

func (p *PPU) renderingEnabled() bool {
	return p.Mask&(MaskShowBackground|MaskShowSprites) != 0
}

// Tick advances the PPU by the given number of PPU cycles (already
// scaled 3:1 against the CPU by the bus). A visible scanline is
// rendered once, at dot 0; vblank/NMI and the pre-render clear happen
// on their respective scanline's dot 0, on the tick that moves the
// counters onto that dot. Sprite-0 hit is set on any dot where OAM
// entry 0's y equals the scanline, its x is at most the dot, and both
// background and sprite rendering are enabled.
func (p *PPU) Tick(cycles uint64) {
	for i := uint64(0); i < cycles; i++ {
		p.tickOne()
	}
}

func (p *PPU) tickOne() {
	p.cycle++
	if p.cycle > 340 {
		p.cycle = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
		}
	}

	if p.cycle == 0 {
		switch {
		case p.scanline >= 0 && p.scanline <= 239:
			if p.renderingEnabled() {
				p.renderScanline(p.scanline)
			}
		case p.scanline == 241:
			p.Status |= StatusVBlank
			p.frame++
			if p.Ctrl&CtrlNMIEnable != 0 {
				p.nmiPending = true
			}
			if p.renderingEnabled() {
				p.renderSprites()
			}
		case p.scanline == 261:
			p.Status &^= StatusVBlank | StatusSprite0 | StatusOverflow
		}
	}

	bothEnabled := MaskShowBackground | MaskShowSprites
	if p.scanline == int(p.oam[0]) && int(p.oam[3]) <= p.cycle && p.Mask&bothEnabled == bothEnabled {
		p.Status |= StatusSprite0
	}
}

// ReadRegister implements a CPU read of one of the eight PPU registers
// mirrored across $2000-$3FFF.
func (p *PPU) ReadRegister(addr uint16) byte {
	switch addr {
	case regPPUSTATUS:
		v := byte(p.Status)
		p.Status &^= StatusVBlank
		p.writeToggle = false
		return v
	case regOAMDATA:
		return p.oam[p.oamAddr]
	case regPPUDATA:
		return p.readData()
	default:
		return 0
	}
}

// WriteRegister implements a CPU write to one of the eight PPU registers.
func (p *PPU) WriteRegister(addr uint16, v byte) {
	switch addr {
	case regPPUCTRL:
		prevNMI := p.Ctrl & CtrlNMIEnable
		p.Ctrl = Ctrl(v)
		if p.Ctrl&CtrlNMIEnable != 0 && prevNMI == 0 && p.Status&StatusVBlank != 0 {
			p.nmiPending = true
		}
	case regPPUMASK:
		p.Mask = Mask(v)
	case regOAMADDR:
		p.oamAddr = v
	case regOAMDATA:
		p.WriteOAMData(v)
	case regPPUSCROLL:
		if !p.writeToggle {
			p.scrollX = v
		} else {
			p.scrollY = v
		}
		p.writeToggle = !p.writeToggle
	case regPPUADDR:
		if !p.writeToggle {
			p.vramAddr = (p.vramAddr & 0x00FF) | (uint16(v) << 8)
		} else {
			p.vramAddr = (p.vramAddr & 0xFF00) | uint16(v)
		}
		p.writeToggle = !p.writeToggle
	case regPPUDATA:
		p.writeData(v)
	}
}

// WriteOAMData writes a byte at the current OAM address (used both by
// a direct $2004 write and by OAM DMA) and auto-increments the address.
func (p *PPU) WriteOAMData(v byte) {
	p.oam[p.oamAddr] = v
	p.oamAddr++
}

func (p *PPU) addrIncrement() uint16 {
	if p.Ctrl&CtrlIncrement32 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readData() byte {
	addr := p.vramAddr & 0x3FFF
	var ret byte
	if addr >= 0x3F00 {
		ret = p.readPalette(addr)
		p.readBuffer = p.readVRAM(addr - 0x1000)
	} else {
		ret = p.readBuffer
		p.readBuffer = p.readVRAM(addr)
	}
	p.vramAddr += p.addrIncrement()
	return ret
}

func (p *PPU) writeData(v byte) {
	addr := p.vramAddr & 0x3FFF
	if addr >= 0x3F00 {
		p.writePalette(addr, v)
	} else {
		p.writeVRAM(addr, v)
	}
	p.vramAddr += p.addrIncrement()
}

// readVRAM/writeVRAM address the pattern-table (cartridge) and
// nametable (internal) windows of the 14-bit PPU address space.
func (p *PPU) readVRAM(addr uint16) byte {
	if addr < 0x2000 {
		return p.Cartridge.Mapper.ReadCHR(addr)
	}
	return p.readNametable(addr)
}

func (p *PPU) writeVRAM(addr uint16, v byte) {
	if addr < 0x2000 {
		p.Cartridge.Mapper.WriteCHR(addr, v)
		return
	}
	p.writeNametable(addr, v)
}

// readNametable/writeNametable fold $2000-$3EFF into the 2 KiB of
// physical nametable RAM via the quadrant indirection, rather than
// keeping cached pointers that would go stale when mirroring changes.
func (p *PPU) readNametable(addr uint16) byte {
	quadrant, offset := nametableIndex(addr)
	bank := p.Cartridge.Quadrant(quadrant)
	return p.nametable[bank*1024+offset]
}

func (p *PPU) writeNametable(addr uint16, v byte) {
	quadrant, offset := nametableIndex(addr)
	bank := p.Cartridge.Quadrant(quadrant)
	p.nametable[bank*1024+offset] = v
}

func nametableIndex(addr uint16) (quadrant int, offset int) {
	a := (addr - 0x2000) % 0x1000
	quadrant = int(a / 1024)
	offset = int(a % 1024)
	return
}

func (p *PPU) readPalette(addr uint16) byte {
	i := paletteIndex(addr)
	v := p.paletteRAM[i]
	if p.Mask&MaskGrayscale != 0 {
		v &= 0x30
	}
	return v
}

func (p *PPU) writePalette(addr uint16, v byte) {
	p.paletteRAM[paletteIndex(addr)] = v
}

// paletteIndex folds $3F00-$3FFF into the 32-byte palette table,
// aliasing the sprite-palette "background color" slots ($3F10,
// $3F14, $3F18, $3F1C) onto their background counterparts.
func paletteIndex(addr uint16) uint16 {
	i := (addr - 0x3F00) % 32
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}

// renderScanline draws background row y using the simplified
// four-quadrant raster: each quadrant is a 32x30 tile grid positioned
// at a logical offset derived from the scroll position, and only the
// tile row containing y in each quadrant is drawn.
func (p *PPU) renderScanline(y int) {
	offsets := [4][2]int{
		{-int(p.scrollX), -int(p.scrollY)},
		{256 - int(p.scrollX), -int(p.scrollY)},
		{-int(p.scrollX), 240 - int(p.scrollY)},
		{256 - int(p.scrollX), 240 - int(p.scrollY)},
	}

	patternTable := uint16(0)
	if p.Ctrl&CtrlBackgroundTable != 0 {
		patternTable = 0x1000
	}

	for quadrant, off := range offsets {
		localY := y - off[1]
		if localY < 0 || localY >= 240 {
			continue
		}
		ty := localY / 8
		fineY := localY % 8

		for tx := 0; tx < 32; tx++ {
			screenX := off[0] + tx*8
			if screenX <= -8 || screenX >= 256 {
				continue
			}

			tileIndex := p.readNametableTile(quadrant, tx, ty)
			paletteHi := p.attributePalette(quadrant, tx, ty)
			lo := p.readVRAM(patternTable + uint16(tileIndex)*16 + uint16(fineY))
			hi := p.readVRAM(patternTable + uint16(tileIndex)*16 + uint16(fineY) + 8)

			for px := 0; px < 8; px++ {
				sx := screenX + px
				if sx < 0 || sx >= 256 {
					continue
				}
				if sx < 8 && p.Mask&MaskShowLeftBG == 0 {
					continue
				}

				bit := uint(7 - px)
				colorIndex := ((hi>>bit)&1)<<1 | (lo>>bit)&1
				var pixel color.RGBA
				if colorIndex == 0 {
					pixel = palette[p.readPalette(0x3F00)&0x3F]
				} else {
					entry := p.readPalette(0x3F00 + uint16(paletteHi)*4 + uint16(colorIndex))
					pixel = palette[entry&0x3F]
				}
				p.buffer[y*256+sx] = pixel
			}
		}
	}
}

func (p *PPU) readNametableTile(quadrant, tx, ty int) byte {
	base := uint16(0x2000 + quadrant*0x400)
	return p.readVRAM(base + uint16(ty*32+tx))
}

func (p *PPU) attributePalette(quadrant, tx, ty int) byte {
	base := uint16(0x2000 + quadrant*0x400 + 0x3C0)
	attr := p.readVRAM(base + uint16((tx/4)+8*(ty/4)))
	shift := uint(2*((tx/2)&1) + 4*((ty/2)&1))
	return (attr >> shift) & 0x03
}

// renderSprites draws the 64 OAM entries once per frame, in reverse
// order so entry 0 ends up topmost. Sprite-0 hit is evaluated in
// tickOne, not here.
func (p *PPU) renderSprites() {
	patternTable := uint16(0)
	if p.Ctrl&CtrlSpriteTable != 0 {
		patternTable = 0x1000
	}

	for i := 63; i >= 0; i-- {
		base := i * 4
		spriteY := int(p.oam[base]) + 1
		tile := p.oam[base+1]
		attr := p.oam[base+2]
		spriteX := int(p.oam[base+3])

		flipH := attr&0x40 != 0
		flipV := attr&0x80 != 0
		paletteHi := attr & 0x03

		for row := 0; row < 8; row++ {
			sy := spriteY + row
			if sy < 0 || sy >= 240 {
				continue
			}
			fineY := row
			if flipV {
				fineY = 7 - row
			}
			lo := p.readVRAM(patternTable + uint16(tile)*16 + uint16(fineY))
			hi := p.readVRAM(patternTable + uint16(tile)*16 + uint16(fineY) + 8)

			for px := 0; px < 8; px++ {
				sx := spriteX + px
				if sx < 0 || sx >= 256 {
					continue
				}
				if sx < 8 && p.Mask&MaskShowLeftSprite == 0 {
					continue
				}

				bit := uint(px)
				if !flipH {
					bit = uint(7 - px)
				}
				colorIndex := ((hi>>bit)&1)<<1 | (lo>>bit)&1
				if colorIndex == 0 {
					continue
				}
				entry := p.readPalette(0x3F10 + uint16(paletteHi)*4 + uint16(colorIndex))
				p.buffer[sy*256+sx] = palette[entry&0x3F]
			}
		}
	}
}
