package cpu

import "github.com/zotley-labs/duocore/operand"

// init populates gbTable with the LR35902-only opcodes spec.md §4.4 calls
// out by name: the ones that repurpose encodings the Z80 gives to
// completely different instructions.
func init() {
	gbTable[0x08] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD (nn),SP", Length: 3, Cycles: 20, Exec: func(c *CPU) {
			nn := c.fetchWord()
			c.tick(20)
			c.Bus.Write16(nn, c.Regs.SP)
		}}
	}
	gbTable[0x10] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "STOP", Length: 2, Cycles: 4, Exec: func(c *CPU) {
			c.fetchByte()
			c.tick(4)
			c.Halted = true
		}}
	}
	gbTable[0x22] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD (HL+),A", Length: 1, Cycles: 8, Exec: func(c *CPU) {
			c.tick(8)
			c.Bus.Write8(c.Regs.HL(), c.Regs.A)
			c.Regs.SetHL(c.Regs.HL() + 1)
		}}
	}
	gbTable[0x2A] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD A,(HL+)", Length: 1, Cycles: 8, Exec: func(c *CPU) {
			c.tick(8)
			c.Regs.A = c.Bus.Read8(c.Regs.HL())
			c.Regs.SetHL(c.Regs.HL() + 1)
		}}
	}
	gbTable[0x32] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD (HL-),A", Length: 1, Cycles: 8, Exec: func(c *CPU) {
			c.tick(8)
			c.Bus.Write8(c.Regs.HL(), c.Regs.A)
			c.Regs.SetHL(c.Regs.HL() - 1)
		}}
	}
	gbTable[0x3A] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD A,(HL-)", Length: 1, Cycles: 8, Exec: func(c *CPU) {
			c.tick(8)
			c.Regs.A = c.Bus.Read8(c.Regs.HL())
			c.Regs.SetHL(c.Regs.HL() - 1)
		}}
	}
	gbTable[0xD9] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "RETI", Length: 1, Cycles: 16, Exec: func(c *CPU) {
			c.tick(16)
			c.Regs.PC = c.pop()
			c.Regs.IFF1, c.Regs.IFF2 = true, true
		}}
	}
	gbTable[0xE0] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LDH (n),A", Length: 2, Cycles: 12, Exec: func(c *CPU) {
			n := c.fetchByte()
			c.tick(12)
			operand.HighPagePointer{Base: 0xFF00, Offset: operand.ImmByte(n), Bus: c.Bus}.WriteByte(c.Regs.A)
		}}
	}
	gbTable[0xF0] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LDH A,(n)", Length: 2, Cycles: 12, Exec: func(c *CPU) {
			n := c.fetchByte()
			c.tick(12)
			c.Regs.A = operand.HighPagePointer{Base: 0xFF00, Offset: operand.ImmByte(n), Bus: c.Bus}.ReadByte()
		}}
	}
	gbTable[0xE2] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD (C),A", Length: 1, Cycles: 8, Exec: func(c *CPU) {
			c.tick(8)
			operand.HighPagePointer{Base: 0xFF00, Offset: operand.RegByte{Ptr: &c.Regs.C}, Bus: c.Bus}.WriteByte(c.Regs.A)
		}}
	}
	gbTable[0xF2] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD A,(C)", Length: 1, Cycles: 8, Exec: func(c *CPU) {
			c.tick(8)
			c.Regs.A = operand.HighPagePointer{Base: 0xFF00, Offset: operand.RegByte{Ptr: &c.Regs.C}, Bus: c.Bus}.ReadByte()
		}}
	}
	gbTable[0xE8] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "ADD SP,n", Length: 2, Cycles: 16, Exec: func(c *CPU) {
			n := int8(c.fetchByte())
			c.tick(16)
			c.Regs.SP = c.spPlusSigned(n)
		}}
	}
	gbTable[0xF8] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD HL,SP+n", Length: 2, Cycles: 12, Exec: func(c *CPU) {
			n := int8(c.fetchByte())
			c.tick(12)
			c.Regs.SetHL(c.spPlusSigned(n))
		}}
	}
	gbTable[0xEA] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD (nn),A", Length: 3, Cycles: 16, Exec: func(c *CPU) {
			nn := c.fetchWord()
			c.tick(16)
			c.Bus.Write8(nn, c.Regs.A)
		}}
	}
	gbTable[0xFA] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD A,(nn)", Length: 3, Cycles: 16, Exec: func(c *CPU) {
			nn := c.fetchWord()
			c.tick(16)
			c.Regs.A = c.Bus.Read8(nn)
		}}
	}
}
