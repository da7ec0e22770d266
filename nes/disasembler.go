package nes

import "fmt"

// emitTrace writes one nestest-style trace line for the instruction
// about to execute at pc, using the CPU's register state before that
// instruction mutates it: address, raw opcode bytes, disassembly,
// registers, PPU dot/scanline, and the running CPU cycle count.
func (c *CPU) emitTrace(pc uint16, op byte, inst Instruction, addr uint16, cycles uint64) {
	raw := make([]byte, inst.Length)
	raw[0] = op
	for i := byte(1); i < inst.Length; i++ {
		raw[i] = c.bus.Read(pc + uint16(i))
	}

	fmt.Fprintf(c.Trace, "%04X  %-9s %-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d\n",
		pc,
		hexBytes(raw),
		disassemble(inst, raw, addr, c.bus),
		c.A, c.X, c.Y, byte(c.P), c.S,
		c.bus.PPU.scanline, c.bus.PPU.cycle,
		cycles,
	)
}

func hexBytes(raw []byte) string {
	var out string
	for i, v := range raw {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%02X", v)
	}
	return out
}

// disassemble renders the mnemonic and operand for one instruction. addr
// is the already-resolved effective address; indirect and indexed modes
// additionally show the resolved address and/or the byte it holds, the
// way the reference nestest trace annotates them.
func disassemble(inst Instruction, raw []byte, addr uint16, bus *Bus) string {
	name := "  " + inst.Name
	if inst.Illegal {
		name = " *" + inst.Name
	}

	switch inst.Mode {
	case AddrImplied:
		return name
	case AddrAccumulator:
		return name + " A"
	case AddrImmediate:
		return fmt.Sprintf("%s #$%02X", name, raw[1])
	case AddrZeroPage:
		return fmt.Sprintf("%s $%02X = %02X", name, raw[1], bus.Read(addr))
	case AddrZeroPageX:
		return fmt.Sprintf("%s $%02X,X @ %02X = %02X", name, raw[1], addr, bus.Read(addr))
	case AddrZeroPageY:
		return fmt.Sprintf("%s $%02X,Y @ %02X = %02X", name, raw[1], addr, bus.Read(addr))
	case AddrAbsolute:
		if inst.Name == "JMP" || inst.Name == "JSR" {
			return fmt.Sprintf("%s $%04X", name, addr)
		}
		return fmt.Sprintf("%s $%04X = %02X", name, addr, bus.Read(addr))
	case AddrAbsoluteX:
		return fmt.Sprintf("%s $%04X,X @ %04X = %02X", name, operand16(raw), addr, bus.Read(addr))
	case AddrAbsoluteY:
		return fmt.Sprintf("%s $%04X,Y @ %04X = %02X", name, operand16(raw), addr, bus.Read(addr))
	case AddrIndirect:
		return fmt.Sprintf("%s ($%04X) = %04X", name, operand16(raw), addr)
	case AddrIndirectX:
		return fmt.Sprintf("%s ($%02X,X) @ %04X = %02X", name, raw[1], addr, bus.Read(addr))
	case AddrIndirectY:
		return fmt.Sprintf("%s ($%02X),Y @ %04X = %02X", name, raw[1], addr, bus.Read(addr))
	case AddrRelative:
		return fmt.Sprintf("%s $%04X", name, addr)
	}

	return name
}

func operand16(raw []byte) uint16 {
	return uint16(raw[2])<<8 | uint16(raw[1])
}
