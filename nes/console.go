package nes

import (
	"fmt"
	"image/color"
	"io"
	"os"
)

// Console wires a Cartridge, RAM, PPU, APU, controller and CPU together
// through a Bus, and drives them one CPU step or one frame at a time.
// It is the entry point embedders use instead of poking at the nes
// package's pieces directly.
type Console struct {
	Cartridge *Cartridge
	RAM       *RAM
	PPU       *PPU
	APU       *APU
	CPU       *CPU
	Ctrl1     *Controller

	bus *Bus
}

// NewConsole builds an empty console with no cartridge loaded. debug, if
// non-nil, receives one nestest-style trace line per CPU instruction.
func NewConsole(debug io.Writer) *Console {
	ram := NewRAM()
	ppu := NewPPU(nil)
	apu := NewAPU()
	ctrl1 := &Controller{}

	bus := &Bus{
		RAM:   ram,
		PPU:   ppu,
		APU:   apu,
		Ctrl1: ctrl1,
	}

	cpu := NewCPU(bus)
	cpu.Trace = debug

	return &Console{
		RAM:   ram,
		PPU:   ppu,
		APU:   apu,
		CPU:   cpu,
		Ctrl1: ctrl1,
		bus:   bus,
	}
}

// Empty reports whether a cartridge has been loaded yet.
func (c *Console) Empty() bool {
	return c.Cartridge == nil
}

// load points the bus and PPU at cart and brings the CPU/PPU up in
// their post-load power state.
func (c *Console) load(cart *Cartridge) {
	c.Cartridge = cart
	c.bus.Cartridge = cart
	c.PPU.Cartridge = cart
	c.Reset()
}

// LoadPath opens path and loads it as an iNES ROM image.
func (c *Console) LoadPath(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("nes: opening rom: %w", err)
	}
	defer f.Close()

	return c.LoadRom(f)
}

// LoadRom parses r as an iNES ROM image and loads it.
func (c *Console) LoadRom(r io.Reader) error {
	cart, err := LoadINES(r)
	if err != nil {
		return err
	}

	c.load(cart)
	return nil
}

// Reset returns the CPU and PPU to their post-load power-up state.
func (c *Console) Reset() {
	c.CPU.Reset()
	c.PPU.Reset()
}

// StepInstruction executes a single CPU instruction (including any NMI
// taken ahead of it) and returns the number of CPU cycles it consumed.
func (c *Console) StepInstruction() (uint64, error) {
	return c.CPU.Step()
}

// StepFrame runs the CPU until the PPU completes one full frame.
func (c *Console) StepFrame() error {
	if c.Empty() {
		return nil
	}

	frame := c.PPU.Frame()
	for frame == c.PPU.Frame() {
		if _, err := c.CPU.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Press sets a button on the first controller port.
func (c *Console) Press(button Button) {
	c.Ctrl1.Press(button)
}

// Release clears a button on the first controller port.
func (c *Console) Release(button Button) {
	c.Ctrl1.Release(button)
}

// Buffer returns the most recently rendered 256x240 framebuffer.
func (c *Console) Buffer() *[256 * 240]color.RGBA {
	return c.PPU.Buffer()
}

// Read and Write expose the CPU's memory map for debugging tools.
func (c *Console) Read(addr uint16) byte     { return c.bus.Read(addr) }
func (c *Console) Write(addr uint16, v byte) { c.bus.Write(addr, v) }
