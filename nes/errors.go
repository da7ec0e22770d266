package nes

import "errors"

// Sentinel errors returned by the core. All of them are fatal: callers
// are expected to print the wrapped message and stop, per the error
// handling contract of the emulator.
var (
	ErrBadSignature       = errors.New("nes: bad iNES signature")
	ErrShortRead          = errors.New("nes: truncated rom file")
	ErrUnsupportedMapper  = errors.New("nes: unsupported mapper")
	ErrUnsupportedAddress = errors.New("nes: unsupported bus address")
	ErrUnknownOpcode      = errors.New("nes: unknown opcode")
	ErrUnsupportedPPU     = errors.New("nes: unsupported ppu operation")
)
