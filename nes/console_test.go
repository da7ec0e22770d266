package nes

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsole_EmptyUntilLoaded(t *testing.T) {
	console := NewConsole(nil)
	require.True(t, console.Empty())
}

func TestConsole_LoadResetsCPUAndPPU(t *testing.T) {
	console := NewConsole(nil)

	prg := make([]byte, 32*1024)
	prg[0x7FFC] = 0x00
	prg[0x7FFD] = 0x80 // reset vector -> $8000
	prg[0] = 0xA9      // LDA #$11
	prg[1] = 0x11

	rom := buildINES(prg, nil, 0, 0)
	require.NoError(t, console.LoadRom(bytes.NewReader(rom)))

	require.False(t, console.Empty())
	require.Equal(t, uint16(0x8000), console.CPU.PC)
	require.Equal(t, byte(0xFD), console.CPU.S)
}

func TestConsole_StepInstructionRunsOneOpcode(t *testing.T) {
	console := NewConsole(nil)

	prg := make([]byte, 32*1024)
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80
	prg[0], prg[1] = 0xA9, 0x42 // LDA #$42

	require.NoError(t, console.LoadRom(bytes.NewReader(buildINES(prg, nil, 0, 0))))

	cycles, err := console.StepInstruction()
	require.NoError(t, err)
	require.Equal(t, uint64(2), cycles)
	require.Equal(t, byte(0x42), console.CPU.A)
}

func TestConsole_StepFrameAdvancesOneFrame(t *testing.T) {
	console := NewConsole(nil)

	prg := make([]byte, 32*1024)
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80
	prg[0] = 0x4C // JMP $8000
	prg[1] = 0x00
	prg[2] = 0x80

	require.NoError(t, console.LoadRom(bytes.NewReader(buildINES(prg, nil, 0, 0))))

	startFrame := console.PPU.Frame()
	require.NoError(t, console.StepFrame())
	require.Greater(t, console.PPU.Frame(), startFrame)
}

func TestConsole_PressReleaseReachesController(t *testing.T) {
	console := NewConsole(nil)
	console.Press(A)
	console.Ctrl1.Write(0) // latch

	require.Equal(t, byte(1), console.Ctrl1.Read())

	console.Release(A)
	console.Ctrl1.Write(1)
	console.Ctrl1.Write(0)
	require.Equal(t, byte(0), console.Ctrl1.Read())
}

func TestConsole_ReadWriteDelegatesToBus(t *testing.T) {
	console := NewConsole(nil)
	console.load(&Cartridge{Mapper: newNROM(&Cartridge{PRG: make([]byte, 32*1024)})})

	console.Write(0x0000, 0x55)
	require.Equal(t, byte(0x55), console.Read(0x0000))
}

func buildINES(prg, chr []byte, flags6, flags7 byte) []byte {
	prgBanks := byte(len(prg) / prgBankSize)
	chrBanks := byte(len(chr) / chrBankSize)
	header := []byte{'N', 'E', 'S', 0x1A, prgBanks, chrBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	out := append(header, prg...)
	out = append(out, chr...)
	return out
}
