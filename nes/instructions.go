package nes

// AddressingMode identifies how an instruction's operand address is
// computed.
type AddressingMode byte

const (
	AddrImplied AddressingMode = iota
	AddrAccumulator
	AddrImmediate
	AddrZeroPage
	AddrZeroPageX
	AddrZeroPageY
	AddrAbsolute
	AddrAbsoluteX
	AddrAbsoluteY
	AddrIndirect
	AddrIndirectX // (zp,X): indexed-indirect
	AddrIndirectY // (zp),Y: indirect-indexed
	AddrRelative
)

// ExtraRule identifies the kind of conditional extra cycle an
// instruction may charge on top of its base cost.
type ExtraRule byte

const (
	ExtraNone ExtraRule = iota
	ExtraPageCross
	ExtraBranch
)

// Instruction is the static descriptor for one opcode byte: its
// mnemonic, addressing mode, encoded length, base cycle cost, and
// extra-cycle rule. Semantics live in cpu.go, dispatched by Name.
type Instruction struct {
	Name    string
	Mode    AddressingMode
	Length  byte
	Cycles  byte
	Extra   ExtraRule
	Illegal bool
}

// instructions is the 256-entry opcode table. Entries with an empty
// Name are opcodes this core does not implement: the official 151,
// the documented-illegal opcodes DCP/ISB/LAX/SAX/SLO/SRE/RLA/RRA, the
// unofficial NOPs, and the $EB SBC alias are covered; anything else
// (ANC, ALR, ARR, AXS, ANE, LAS, SHA, TAS, SHX, SHY, JAM and friends)
// is a fatal unknown opcode when fetched.
var instructions [256]Instruction

func init() {
	set := func(op byte, name string, mode AddressingMode, length, cycles byte, extra ExtraRule, illegal bool) {
		instructions[op] = Instruction{Name: name, Mode: mode, Length: length, Cycles: cycles, Extra: extra, Illegal: illegal}
	}

	// Official opcodes.
	set(0x00, "BRK", AddrImplied, 1, 7, ExtraNone, false)
	set(0x01, "ORA", AddrIndirectX, 2, 6, ExtraNone, false)
	set(0x05, "ORA", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0x06, "ASL", AddrZeroPage, 2, 5, ExtraNone, false)
	set(0x08, "PHP", AddrImplied, 1, 3, ExtraNone, false)
	set(0x09, "ORA", AddrImmediate, 2, 2, ExtraNone, false)
	set(0x0A, "ASL", AddrAccumulator, 1, 2, ExtraNone, false)
	set(0x0D, "ORA", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0x0E, "ASL", AddrAbsolute, 3, 6, ExtraNone, false)

	set(0x10, "BPL", AddrRelative, 2, 2, ExtraBranch, false)
	set(0x11, "ORA", AddrIndirectY, 2, 5, ExtraPageCross, false)
	set(0x15, "ORA", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0x16, "ASL", AddrZeroPageX, 2, 6, ExtraNone, false)
	set(0x18, "CLC", AddrImplied, 1, 2, ExtraNone, false)
	set(0x19, "ORA", AddrAbsoluteY, 3, 4, ExtraPageCross, false)
	set(0x1D, "ORA", AddrAbsoluteX, 3, 4, ExtraPageCross, false)
	set(0x1E, "ASL", AddrAbsoluteX, 3, 7, ExtraNone, false)

	set(0x20, "JSR", AddrAbsolute, 3, 6, ExtraNone, false)
	set(0x21, "AND", AddrIndirectX, 2, 6, ExtraNone, false)
	set(0x24, "BIT", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0x25, "AND", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0x26, "ROL", AddrZeroPage, 2, 5, ExtraNone, false)
	set(0x28, "PLP", AddrImplied, 1, 4, ExtraNone, false)
	set(0x29, "AND", AddrImmediate, 2, 2, ExtraNone, false)
	set(0x2A, "ROL", AddrAccumulator, 1, 2, ExtraNone, false)
	set(0x2C, "BIT", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0x2D, "AND", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0x2E, "ROL", AddrAbsolute, 3, 6, ExtraNone, false)

	set(0x30, "BMI", AddrRelative, 2, 2, ExtraBranch, false)
	set(0x31, "AND", AddrIndirectY, 2, 5, ExtraPageCross, false)
	set(0x35, "AND", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0x36, "ROL", AddrZeroPageX, 2, 6, ExtraNone, false)
	set(0x38, "SEC", AddrImplied, 1, 2, ExtraNone, false)
	set(0x39, "AND", AddrAbsoluteY, 3, 4, ExtraPageCross, false)
	set(0x3D, "AND", AddrAbsoluteX, 3, 4, ExtraPageCross, false)
	set(0x3E, "ROL", AddrAbsoluteX, 3, 7, ExtraNone, false)

	set(0x40, "RTI", AddrImplied, 1, 6, ExtraNone, false)
	set(0x41, "EOR", AddrIndirectX, 2, 6, ExtraNone, false)
	set(0x45, "EOR", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0x46, "LSR", AddrZeroPage, 2, 5, ExtraNone, false)
	set(0x48, "PHA", AddrImplied, 1, 3, ExtraNone, false)
	set(0x49, "EOR", AddrImmediate, 2, 2, ExtraNone, false)
	set(0x4A, "LSR", AddrAccumulator, 1, 2, ExtraNone, false)
	set(0x4C, "JMP", AddrAbsolute, 3, 3, ExtraNone, false)
	set(0x4D, "EOR", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0x4E, "LSR", AddrAbsolute, 3, 6, ExtraNone, false)

	set(0x50, "BVC", AddrRelative, 2, 2, ExtraBranch, false)
	set(0x51, "EOR", AddrIndirectY, 2, 5, ExtraPageCross, false)
	set(0x55, "EOR", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0x56, "LSR", AddrZeroPageX, 2, 6, ExtraNone, false)
	set(0x58, "CLI", AddrImplied, 1, 2, ExtraNone, false)
	set(0x59, "EOR", AddrAbsoluteY, 3, 4, ExtraPageCross, false)
	set(0x5D, "EOR", AddrAbsoluteX, 3, 4, ExtraPageCross, false)
	set(0x5E, "LSR", AddrAbsoluteX, 3, 7, ExtraNone, false)

	set(0x60, "RTS", AddrImplied, 1, 6, ExtraNone, false)
	set(0x61, "ADC", AddrIndirectX, 2, 6, ExtraNone, false)
	set(0x65, "ADC", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0x66, "ROR", AddrZeroPage, 2, 5, ExtraNone, false)
	set(0x68, "PLA", AddrImplied, 1, 4, ExtraNone, false)
	set(0x69, "ADC", AddrImmediate, 2, 2, ExtraNone, false)
	set(0x6A, "ROR", AddrAccumulator, 1, 2, ExtraNone, false)
	set(0x6C, "JMP", AddrIndirect, 3, 5, ExtraNone, false)
	set(0x6D, "ADC", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0x6E, "ROR", AddrAbsolute, 3, 6, ExtraNone, false)

	set(0x70, "BVS", AddrRelative, 2, 2, ExtraBranch, false)
	set(0x71, "ADC", AddrIndirectY, 2, 5, ExtraPageCross, false)
	set(0x75, "ADC", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0x76, "ROR", AddrZeroPageX, 2, 6, ExtraNone, false)
	set(0x78, "SEI", AddrImplied, 1, 2, ExtraNone, false)
	set(0x79, "ADC", AddrAbsoluteY, 3, 4, ExtraPageCross, false)
	set(0x7D, "ADC", AddrAbsoluteX, 3, 4, ExtraPageCross, false)
	set(0x7E, "ROR", AddrAbsoluteX, 3, 7, ExtraNone, false)

	set(0x81, "STA", AddrIndirectX, 2, 6, ExtraNone, false)
	set(0x84, "STY", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0x85, "STA", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0x86, "STX", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0x88, "DEY", AddrImplied, 1, 2, ExtraNone, false)
	set(0x8A, "TXA", AddrImplied, 1, 2, ExtraNone, false)
	set(0x8C, "STY", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0x8D, "STA", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0x8E, "STX", AddrAbsolute, 3, 4, ExtraNone, false)

	set(0x90, "BCC", AddrRelative, 2, 2, ExtraBranch, false)
	set(0x91, "STA", AddrIndirectY, 2, 6, ExtraNone, false)
	set(0x94, "STY", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0x95, "STA", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0x96, "STX", AddrZeroPageY, 2, 4, ExtraNone, false)
	set(0x98, "TYA", AddrImplied, 1, 2, ExtraNone, false)
	set(0x99, "STA", AddrAbsoluteY, 3, 5, ExtraNone, false)
	set(0x9A, "TXS", AddrImplied, 1, 2, ExtraNone, false)
	set(0x9D, "STA", AddrAbsoluteX, 3, 5, ExtraNone, false)

	set(0xA0, "LDY", AddrImmediate, 2, 2, ExtraNone, false)
	set(0xA1, "LDA", AddrIndirectX, 2, 6, ExtraNone, false)
	set(0xA2, "LDX", AddrImmediate, 2, 2, ExtraNone, false)
	set(0xA4, "LDY", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0xA5, "LDA", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0xA6, "LDX", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0xA8, "TAY", AddrImplied, 1, 2, ExtraNone, false)
	set(0xA9, "LDA", AddrImmediate, 2, 2, ExtraNone, false)
	set(0xAA, "TAX", AddrImplied, 1, 2, ExtraNone, false)
	set(0xAC, "LDY", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0xAD, "LDA", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0xAE, "LDX", AddrAbsolute, 3, 4, ExtraNone, false)

	set(0xB0, "BCS", AddrRelative, 2, 2, ExtraBranch, false)
	set(0xB1, "LDA", AddrIndirectY, 2, 5, ExtraPageCross, false)
	set(0xB4, "LDY", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0xB5, "LDA", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0xB6, "LDX", AddrZeroPageY, 2, 4, ExtraNone, false)
	set(0xB8, "CLV", AddrImplied, 1, 2, ExtraNone, false)
	set(0xB9, "LDA", AddrAbsoluteY, 3, 4, ExtraPageCross, false)
	set(0xBA, "TSX", AddrImplied, 1, 2, ExtraNone, false)
	set(0xBC, "LDY", AddrAbsoluteX, 3, 4, ExtraPageCross, false)
	set(0xBD, "LDA", AddrAbsoluteX, 3, 4, ExtraPageCross, false)
	set(0xBE, "LDX", AddrAbsoluteY, 3, 4, ExtraPageCross, false)

	set(0xC0, "CPY", AddrImmediate, 2, 2, ExtraNone, false)
	set(0xC1, "CMP", AddrIndirectX, 2, 6, ExtraNone, false)
	set(0xC4, "CPY", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0xC5, "CMP", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0xC6, "DEC", AddrZeroPage, 2, 5, ExtraNone, false)
	set(0xC8, "INY", AddrImplied, 1, 2, ExtraNone, false)
	set(0xC9, "CMP", AddrImmediate, 2, 2, ExtraNone, false)
	set(0xCA, "DEX", AddrImplied, 1, 2, ExtraNone, false)
	set(0xCC, "CPY", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0xCD, "CMP", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0xCE, "DEC", AddrAbsolute, 3, 6, ExtraNone, false)

	set(0xD0, "BNE", AddrRelative, 2, 2, ExtraBranch, false)
	set(0xD1, "CMP", AddrIndirectY, 2, 5, ExtraPageCross, false)
	set(0xD5, "CMP", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0xD6, "DEC", AddrZeroPageX, 2, 6, ExtraNone, false)
	set(0xD8, "CLD", AddrImplied, 1, 2, ExtraNone, false)
	set(0xD9, "CMP", AddrAbsoluteY, 3, 4, ExtraPageCross, false)
	set(0xDD, "CMP", AddrAbsoluteX, 3, 4, ExtraPageCross, false)
	set(0xDE, "DEC", AddrAbsoluteX, 3, 7, ExtraNone, false)

	set(0xE0, "CPX", AddrImmediate, 2, 2, ExtraNone, false)
	set(0xE1, "SBC", AddrIndirectX, 2, 6, ExtraNone, false)
	set(0xE4, "CPX", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0xE5, "SBC", AddrZeroPage, 2, 3, ExtraNone, false)
	set(0xE6, "INC", AddrZeroPage, 2, 5, ExtraNone, false)
	set(0xE8, "INX", AddrImplied, 1, 2, ExtraNone, false)
	set(0xE9, "SBC", AddrImmediate, 2, 2, ExtraNone, false)
	set(0xEA, "NOP", AddrImplied, 1, 2, ExtraNone, false)
	set(0xEC, "CPX", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0xED, "SBC", AddrAbsolute, 3, 4, ExtraNone, false)
	set(0xEE, "INC", AddrAbsolute, 3, 6, ExtraNone, false)

	set(0xF0, "BEQ", AddrRelative, 2, 2, ExtraBranch, false)
	set(0xF1, "SBC", AddrIndirectY, 2, 5, ExtraPageCross, false)
	set(0xF5, "SBC", AddrZeroPageX, 2, 4, ExtraNone, false)
	set(0xF6, "INC", AddrZeroPageX, 2, 6, ExtraNone, false)
	set(0xF8, "SED", AddrImplied, 1, 2, ExtraNone, false)
	set(0xF9, "SBC", AddrAbsoluteY, 3, 4, ExtraPageCross, false)
	set(0xFD, "SBC", AddrAbsoluteX, 3, 4, ExtraPageCross, false)
	set(0xFE, "INC", AddrAbsoluteX, 3, 7, ExtraNone, false)

	// Documented-illegal opcodes.
	illegal := func(op byte, name string, mode AddressingMode, length, cycles byte, extra ExtraRule) {
		set(op, name, mode, length, cycles, extra, true)
	}

	illegal(0xEB, "SBC", AddrImmediate, 2, 2, ExtraNone) // undocumented alias of 0xE9

	illegal(0xA3, "LAX", AddrIndirectX, 2, 6, ExtraNone)
	illegal(0xA7, "LAX", AddrZeroPage, 2, 3, ExtraNone)
	illegal(0xAF, "LAX", AddrAbsolute, 3, 4, ExtraNone)
	illegal(0xB3, "LAX", AddrIndirectY, 2, 5, ExtraPageCross)
	illegal(0xB7, "LAX", AddrZeroPageY, 2, 4, ExtraNone)
	illegal(0xBF, "LAX", AddrAbsoluteY, 3, 4, ExtraPageCross)

	illegal(0x83, "SAX", AddrIndirectX, 2, 6, ExtraNone)
	illegal(0x87, "SAX", AddrZeroPage, 2, 3, ExtraNone)
	illegal(0x8F, "SAX", AddrAbsolute, 3, 4, ExtraNone)
	illegal(0x97, "SAX", AddrZeroPageY, 2, 4, ExtraNone)

	illegal(0xC3, "DCP", AddrIndirectX, 2, 8, ExtraNone)
	illegal(0xC7, "DCP", AddrZeroPage, 2, 5, ExtraNone)
	illegal(0xCF, "DCP", AddrAbsolute, 3, 6, ExtraNone)
	illegal(0xD3, "DCP", AddrIndirectY, 2, 8, ExtraNone)
	illegal(0xD7, "DCP", AddrZeroPageX, 2, 6, ExtraNone)
	illegal(0xDB, "DCP", AddrAbsoluteY, 3, 7, ExtraNone)
	illegal(0xDF, "DCP", AddrAbsoluteX, 3, 7, ExtraNone)

	illegal(0xE3, "ISB", AddrIndirectX, 2, 8, ExtraNone)
	illegal(0xE7, "ISB", AddrZeroPage, 2, 5, ExtraNone)
	illegal(0xEF, "ISB", AddrAbsolute, 3, 6, ExtraNone)
	illegal(0xF3, "ISB", AddrIndirectY, 2, 8, ExtraNone)
	illegal(0xF7, "ISB", AddrZeroPageX, 2, 6, ExtraNone)
	illegal(0xFB, "ISB", AddrAbsoluteY, 3, 7, ExtraNone)
	illegal(0xFF, "ISB", AddrAbsoluteX, 3, 7, ExtraNone)

	illegal(0x03, "SLO", AddrIndirectX, 2, 8, ExtraNone)
	illegal(0x07, "SLO", AddrZeroPage, 2, 5, ExtraNone)
	illegal(0x0F, "SLO", AddrAbsolute, 3, 6, ExtraNone)
	illegal(0x13, "SLO", AddrIndirectY, 2, 8, ExtraNone)
	illegal(0x17, "SLO", AddrZeroPageX, 2, 6, ExtraNone)
	illegal(0x1B, "SLO", AddrAbsoluteY, 3, 7, ExtraNone)
	illegal(0x1F, "SLO", AddrAbsoluteX, 3, 7, ExtraNone)

	illegal(0x23, "RLA", AddrIndirectX, 2, 8, ExtraNone)
	illegal(0x27, "RLA", AddrZeroPage, 2, 5, ExtraNone)
	illegal(0x2F, "RLA", AddrAbsolute, 3, 6, ExtraNone)
	illegal(0x33, "RLA", AddrIndirectY, 2, 8, ExtraNone)
	illegal(0x37, "RLA", AddrZeroPageX, 2, 6, ExtraNone)
	illegal(0x3B, "RLA", AddrAbsoluteY, 3, 7, ExtraNone)
	illegal(0x3F, "RLA", AddrAbsoluteX, 3, 7, ExtraNone)

	illegal(0x43, "SRE", AddrIndirectX, 2, 8, ExtraNone)
	illegal(0x47, "SRE", AddrZeroPage, 2, 5, ExtraNone)
	illegal(0x4F, "SRE", AddrAbsolute, 3, 6, ExtraNone)
	illegal(0x53, "SRE", AddrIndirectY, 2, 8, ExtraNone)
	illegal(0x57, "SRE", AddrZeroPageX, 2, 6, ExtraNone)
	illegal(0x5B, "SRE", AddrAbsoluteY, 3, 7, ExtraNone)
	illegal(0x5F, "SRE", AddrAbsoluteX, 3, 7, ExtraNone)

	illegal(0x63, "RRA", AddrIndirectX, 2, 8, ExtraNone)
	illegal(0x67, "RRA", AddrZeroPage, 2, 5, ExtraNone)
	illegal(0x6F, "RRA", AddrAbsolute, 3, 6, ExtraNone)
	illegal(0x73, "RRA", AddrIndirectY, 2, 8, ExtraNone)
	illegal(0x77, "RRA", AddrZeroPageX, 2, 6, ExtraNone)
	illegal(0x7B, "RRA", AddrAbsoluteY, 3, 7, ExtraNone)
	illegal(0x7F, "RRA", AddrAbsoluteX, 3, 7, ExtraNone)

	// Unofficial NOPs: consume their addressing-mode bytes and cycles
	// without side effects beyond whatever read the addressing mode
	// itself performs.
	for _, op := range []byte{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		illegal(op, "NOP", AddrImplied, 1, 2, ExtraNone)
	}
	for _, op := range []byte{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		illegal(op, "NOP", AddrImmediate, 2, 2, ExtraNone)
	}
	for _, op := range []byte{0x04, 0x44, 0x64} {
		illegal(op, "NOP", AddrZeroPage, 2, 3, ExtraNone)
	}
	for _, op := range []byte{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		illegal(op, "NOP", AddrZeroPageX, 2, 4, ExtraNone)
	}
	illegal(0x0C, "NOP", AddrAbsolute, 3, 4, ExtraNone)
	for _, op := range []byte{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		illegal(op, "NOP", AddrAbsoluteX, 3, 4, ExtraPageCross)
	}
}

// addressingFormats maps each addressing mode to a printf format for its
// operand. The trace output does not use it: disassemble in
// disasembler.go formats operands itself.
var addressingFormats = map[AddressingMode]string{
	AddrImmediate:   "#$%02X",
	AddrAbsolute:    "$%04X",
	AddrZeroPage:    "$%02X",
	AddrZeroPageX:   "$%02X,X",
	AddrZeroPageY:   "$%02X,Y",
	AddrAbsoluteX:   "$%04X,X",
	AddrAbsoluteY:   "$%04X,Y",
	AddrIndirect:    "($%04X)",
	AddrIndirectX:   "($%02X,X)",
	AddrIndirectY:   "($%02X),Y",
	AddrRelative:    "$%04X",
	AddrAccumulator: "A",
	AddrImplied:     "",
}
