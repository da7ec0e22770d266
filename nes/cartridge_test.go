package nes

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func rom(flags6, flags7, prgBanks, chrBanks byte) []byte {
	header := []byte{'N', 'E', 'S', 0x1A, prgBanks, chrBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	body := make([]byte, int(prgBanks)*prgBankSize+int(chrBanks)*chrBankSize)
	return append(header, body...)
}

func TestLoadINES_BadSignature(t *testing.T) {
	_, err := LoadINES(bytes.NewReader([]byte{'N', 'O', 'S', 0x1A, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}))
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestLoadINES_ShortRead(t *testing.T) {
	_, err := LoadINES(bytes.NewReader([]byte{'N', 'E', 'S', 0x1A}))
	require.ErrorIs(t, err, ErrShortRead)
}

func TestLoadINES_EmptyPRG(t *testing.T) {
	_, err := LoadINES(bytes.NewReader([]byte{'N', 'E', 'S', 0x1A, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}))
	require.ErrorIs(t, err, ErrShortRead)
}

func TestLoadINES_TruncatedBody(t *testing.T) {
	r := rom(0, 0, 1, 1)
	_, err := LoadINES(bytes.NewReader(r[:len(r)-10]))
	require.ErrorIs(t, err, ErrShortRead)
}

func TestLoadINES_UnsupportedMapper(t *testing.T) {
	_, err := LoadINES(bytes.NewReader(rom(0xF0, 0, 1, 1)))
	require.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestLoadINES_MirrorMode(t *testing.T) {
	tests := []struct {
		name           string
		flags6         byte
		flags7         byte
		wantMirrorMode MirrorMode
	}{
		{"horizontal", 0, 0, MirrorHorizontal},
		{"vertical", flag6Vertical, 0, MirrorVertical},
		{"four screen", flag6FourScreen, 0, MirrorFourScreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadINES(bytes.NewReader(rom(tt.flags6, tt.flags7, 1, 1)))
			require.NoError(t, err)
			require.Equal(t, tt.wantMirrorMode, c.MirrorMode)
		})
	}
}

func TestLoadINES_MapperSelection(t *testing.T) {
	c, err := LoadINES(bytes.NewReader(rom(0x00, 0x00, 2, 1)))
	require.NoError(t, err)
	_, ok := c.Mapper.(*nrom)
	require.True(t, ok, "mapper 0 should select NROM")

	c, err = LoadINES(bytes.NewReader(rom(0x20, 0x00, 2, 1)))
	require.NoError(t, err)
	_, ok = c.Mapper.(*uxrom)
	require.True(t, ok, "mapper 2 should select UxROM")
}

func TestLoadINES_CHRRAMWhenNoCHRBanks(t *testing.T) {
	c, err := LoadINES(bytes.NewReader(rom(0, 0, 1, 0)))
	require.NoError(t, err)
	require.True(t, c.CHRWritable)
	require.Len(t, c.CHR, chrBankSize)
}

func TestLoadINES_TrainerOffset(t *testing.T) {
	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, flag6Trainer, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	trainer := make([]byte, 512)
	prg := make([]byte, prgBankSize)
	prg[0] = 0xAB
	chr := make([]byte, chrBankSize)

	buf := append(header, trainer...)
	buf = append(buf, prg...)
	buf = append(buf, chr...)

	c, err := LoadINES(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), c.PRG[0])
}

func TestCartridge_Quadrant(t *testing.T) {
	tests := []struct {
		mode MirrorMode
		q    int
		want int
	}{
		{MirrorVertical, 0, 0},
		{MirrorVertical, 1, 1},
		{MirrorVertical, 2, 0},
		{MirrorVertical, 3, 1},
		{MirrorHorizontal, 0, 0},
		{MirrorHorizontal, 1, 0},
		{MirrorHorizontal, 2, 1},
		{MirrorHorizontal, 3, 1},
	}

	for _, tt := range tests {
		c := &Cartridge{MirrorMode: tt.mode}
		require.Equal(t, tt.want, c.Quadrant(tt.q))
	}
}
