package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testPPU(mirror MirrorMode) *PPU {
	cart := &Cartridge{
		MirrorMode:  mirror,
		CHR:         make([]byte, 8*1024),
		CHRWritable: true,
	}
	cart.Mapper = newNROM(&Cartridge{PRG: make([]byte, 16*1024), CHR: cart.CHR, CHRWritable: true})
	return NewPPU(cart)
}

func TestPPU_NametableMirroring(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		p := testPPU(MirrorHorizontal)
		p.writeNametable(0x2000, 1)
		p.writeNametable(0x2800, 2)

		require.Equal(t, byte(1), p.readNametable(0x2000))
		require.Equal(t, byte(1), p.readNametable(0x2400), "quadrant 1 mirrors quadrant 0")
		require.Equal(t, byte(2), p.readNametable(0x2800))
		require.Equal(t, byte(2), p.readNametable(0x2C00), "quadrant 3 mirrors quadrant 2")
	})

	t.Run("vertical", func(t *testing.T) {
		p := testPPU(MirrorVertical)
		p.writeNametable(0x2000, 1)
		p.writeNametable(0x2400, 2)

		require.Equal(t, byte(1), p.readNametable(0x2000))
		require.Equal(t, byte(2), p.readNametable(0x2400))
		require.Equal(t, byte(1), p.readNametable(0x2800), "quadrant 2 mirrors quadrant 0")
		require.Equal(t, byte(2), p.readNametable(0x2C00), "quadrant 3 mirrors quadrant 1")
	})
}

func TestPPU_PaletteAliasing(t *testing.T) {
	p := testPPU(MirrorHorizontal)

	p.writePalette(0x3F00, 0x0F)
	require.Equal(t, byte(0x0F), p.readPalette(0x3F10), "sprite backdrop mirrors universal background")

	p.writePalette(0x3F14, 0x01)
	require.Equal(t, byte(0x01), p.readPalette(0x3F04))
}

func TestPPU_PaletteGrayscaleMask(t *testing.T) {
	p := testPPU(MirrorHorizontal)
	p.writePalette(0x3F01, 0x3F)
	p.Mask |= MaskGrayscale

	require.Equal(t, byte(0x30), p.readPalette(0x3F01))
}

func TestPPU_RegisterWriteComposesVRAMAddress(t *testing.T) {
	p := testPPU(MirrorHorizontal)
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x08)

	require.Equal(t, uint16(0x2108), p.vramAddr)
}

func TestPPU_VBlankSetOnScanline241AndClearedOnRead(t *testing.T) {
	p := testPPU(MirrorHorizontal)
	p.Tick(341 * 242) // run through scanline 241, dot 0

	require.True(t, p.Status&StatusVBlank != 0)

	v := p.ReadRegister(0x2002)
	require.True(t, v&byte(StatusVBlank) != 0)
	require.True(t, p.Status&StatusVBlank == 0, "reading $2002 clears vblank")
}

func TestPPU_NMIOnVBlankStart(t *testing.T) {
	p := testPPU(MirrorHorizontal)
	p.Ctrl |= CtrlNMIEnable
	p.Tick(341 * 242)

	require.True(t, p.TakeNMI())
	require.False(t, p.TakeNMI(), "TakeNMI clears the pending flag")
}

func TestPPU_NMIOnEnableDuringVBlank(t *testing.T) {
	p := testPPU(MirrorHorizontal)
	p.Tick(341 * 242) // enter vblank with NMI disabled

	require.False(t, p.TakeNMI())

	p.WriteRegister(0x2000, byte(CtrlNMIEnable))
	require.True(t, p.TakeNMI(), "enabling NMI while vblank is set raises one immediately")
}

func TestPPU_ThreeToOneCycleRatio(t *testing.T) {
	p := testPPU(MirrorHorizontal)
	bus := &Bus{Cartridge: p.Cartridge, RAM: NewRAM(), PPU: p, APU: NewAPU(), Ctrl1: &Controller{}}

	bus.Tick(1)
	require.Equal(t, 3, p.cycle, "one CPU cycle must advance the PPU by three dots")
}

func TestPPU_OAMDataAutoIncrements(t *testing.T) {
	p := testPPU(MirrorHorizontal)
	p.WriteRegister(0x2003, 0x10)
	p.WriteOAMData(0xAA)
	p.WriteOAMData(0xBB)

	require.Equal(t, byte(0xAA), p.oam[0x10])
	require.Equal(t, byte(0xBB), p.oam[0x11])
	require.Equal(t, byte(0x12), p.oamAddr)
}
