package cpu

import "github.com/zotley-labs/duocore/operand"

// reg8 binds the standard Z80 3-bit register encoding: B,C,D,E,H,L,(HL),A.
// Index 6, (HL), is the one case that dereferences through the bus rather
// than touching register storage directly.
func (c *CPU) reg8(idx byte) operand.ByteReadWriter {
	switch idx & 7 {
	case 0:
		return operand.RegByte{Ptr: &c.Regs.B}
	case 1:
		return operand.RegByte{Ptr: &c.Regs.C}
	case 2:
		return operand.RegByte{Ptr: &c.Regs.D}
	case 3:
		return operand.RegByte{Ptr: &c.Regs.E}
	case 4:
		return operand.RegByte{Ptr: &c.Regs.H}
	case 5:
		return operand.RegByte{Ptr: &c.Regs.L}
	case 6:
		return operand.IndirectByte{Addr: c.hlWord(), Bus: c.Bus}
	default:
		return operand.RegByte{Ptr: &c.Regs.A}
	}
}

func (c *CPU) hlWord() operand.WordReadWriter {
	return operand.RegWord{Get: c.Regs.HL, Set: c.Regs.SetHL}
}

// regPairSP binds the {BC,DE,HL,SP} encoding used by 16-bit LD/INC/DEC/ADD
// HL, and regPairAF binds {BC,DE,HL,AF} used by PUSH/POP.
func (c *CPU) regPairSP(idx byte) operand.WordReadWriter {
	switch idx & 3 {
	case 0:
		return operand.RegWord{Get: c.Regs.BC, Set: c.Regs.SetBC}
	case 1:
		return operand.RegWord{Get: c.Regs.DE, Set: c.Regs.SetDE}
	case 2:
		return c.hlWord()
	default:
		return operand.RegWord{Get: func() uint16 { return c.Regs.SP }, Set: func(v uint16) { c.Regs.SP = v }}
	}
}

func (c *CPU) regPairAF(idx byte) operand.WordReadWriter {
	switch idx & 3 {
	case 0:
		return operand.RegWord{Get: c.Regs.BC, Set: c.Regs.SetBC}
	case 1:
		return operand.RegWord{Get: c.Regs.DE, Set: c.Regs.SetDE}
	case 2:
		return c.hlWord()
	default:
		return operand.RegWord{Get: c.Regs.AF, Set: c.Regs.SetAF}
	}
}

// cond evaluates the four conditions shared by both variants: NZ,Z,NC,C.
func (c *CPU) cond(cc byte) bool {
	switch cc & 3 {
	case 0:
		return !c.Regs.Zero().Read()
	case 1:
		return c.Regs.Zero().Read()
	case 2:
		return !c.Regs.Carry().Read()
	default:
		return c.Regs.Carry().Read()
	}
}
