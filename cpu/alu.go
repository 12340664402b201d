package cpu

import "github.com/zotley-labs/duocore/register"

// parity8 reports even parity (spec.md glossary doesn't define parity
// directly, but the Z80's P/V flag in its "parity" role needs it).
func parity8(v byte) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

// incDec8 implements INC r8/DEC r8's shared flag routine (spec.md §4.4
// "Flag conventions"): Z on the result, H on the nibble-boundary carry or
// borrow, N tags the direction, C is untouched, and on Z80 S mirrors the
// result's sign bit while P/V fires only on the signed-overflow boundary
// value (0x7F for INC, 0x80 for DEC).
func (c *CPU) incDec8(value byte, dec bool) byte {
	var result byte
	if dec {
		result = value - 1
	} else {
		result = value + 1
	}
	c.Regs.Zero().Write(result == 0)
	c.Regs.Subtract().Write(dec)
	if dec {
		c.Regs.HalfCarry().Write(result&0x0F == 0x0F)
	} else {
		c.Regs.HalfCarry().Write(result&0x0F == 0x00)
	}
	if c.Variant == register.Z80 {
		c.Regs.Sign().Write(result&0x80 != 0)
		if dec {
			c.Regs.ParityOverflow().Write(value == 0x80)
		} else {
			c.Regs.ParityOverflow().Write(value == 0x7F)
		}
	}
	return result
}

// ALU op codes matching the Z80 0x80-0xBF grid: ADD,ADC,SUB,SBC,AND,XOR,OR,CP.
const (
	aluADD = iota
	aluADC
	aluSUB
	aluSBC
	aluAND
	aluXOR
	aluOR
	aluCP
)

// alu8 applies one of the eight accumulator operations against value,
// updating flags the same way on both variants except for the Z80-only
// S/P-V pair (spec.md §4.3: LR35902 has no sign or parity/overflow flag).
func (c *CPU) alu8(op byte, value byte) {
	a := c.Regs.A
	carryIn := byte(0)
	if (op == aluADC || op == aluSBC) && c.Regs.Carry().Read() {
		carryIn = 1
	}

	var result int
	switch op {
	case aluADD, aluADC:
		result = int(a) + int(value) + int(carryIn)
	case aluSUB, aluSBC, aluCP:
		result = int(a) - int(value) - int(carryIn)
	case aluAND:
		result = int(a & value)
	case aluXOR:
		result = int(a ^ value)
	case aluOR:
		result = int(a | value)
	}
	res8 := byte(result)
	c.Regs.Zero().Write(res8 == 0)

	switch op {
	case aluADD, aluADC:
		c.Regs.Subtract().Write(false)
		c.Regs.HalfCarry().Write((a&0x0F)+(value&0x0F)+carryIn > 0x0F)
		c.Regs.Carry().Write(result > 0xFF)
		if c.Variant == register.Z80 {
			c.Regs.Sign().Write(res8&0x80 != 0)
			c.Regs.ParityOverflow().Write((a^value)&0x80 == 0 && (a^res8)&0x80 != 0)
		}
	case aluSUB, aluSBC, aluCP:
		c.Regs.Subtract().Write(true)
		c.Regs.HalfCarry().Write(int(a&0x0F)-int(value&0x0F)-int(carryIn) < 0)
		c.Regs.Carry().Write(result < 0)
		if c.Variant == register.Z80 {
			c.Regs.Sign().Write(res8&0x80 != 0)
			c.Regs.ParityOverflow().Write((a^value)&0x80 != 0 && (a^res8)&0x80 != 0)
		}
	case aluAND:
		c.Regs.Subtract().Write(false)
		c.Regs.HalfCarry().Write(true)
		c.Regs.Carry().Write(false)
		if c.Variant == register.Z80 {
			c.Regs.Sign().Write(res8&0x80 != 0)
			c.Regs.ParityOverflow().Write(parity8(res8))
		}
	case aluXOR, aluOR:
		c.Regs.Subtract().Write(false)
		c.Regs.HalfCarry().Write(false)
		c.Regs.Carry().Write(false)
		if c.Variant == register.Z80 {
			c.Regs.Sign().Write(res8&0x80 != 0)
			c.Regs.ParityOverflow().Write(parity8(res8))
		}
	}

	if op != aluCP {
		c.Regs.A = res8
	}
}

// addHL16 is ADD HL,rr, common to both variants: only H, N and C move; S,
// Z and P/V (where they exist) are preserved.
func (c *CPU) addHL16(value uint16) {
	hl := c.Regs.HL()
	result := uint32(hl) + uint32(value)
	c.Regs.Subtract().Write(false)
	c.Regs.HalfCarry().Write((hl&0x0FFF)+(value&0x0FFF) > 0x0FFF)
	c.Regs.Carry().Write(result > 0xFFFF)
	c.Regs.SetHL(uint16(result))
}

// spPlusSigned implements the LR35902's ADD SP,n / LD HL,SP+n arithmetic
// (spec.md §4.4, §9 Open Question (c)): Z and N are always cleared, and H
// and C come from an 8-bit unsigned add on SP's low byte against n's raw
// bit pattern, not from the full signed 16-bit sum — "a well-known wart".
func (c *CPU) spPlusSigned(n int8) uint16 {
	sp := c.Regs.SP
	lowSP := byte(sp)
	raw := byte(n)
	c.Regs.Zero().Write(false)
	c.Regs.Subtract().Write(false)
	c.Regs.HalfCarry().Write((lowSP&0x0F)+(raw&0x0F) > 0x0F)
	c.Regs.Carry().Write(int(lowSP)+int(raw) > 0xFF)
	return uint16(int32(sp) + int32(n))
}

func b2u8(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (c *CPU) rotateLeft(v byte, throughCarry bool) (byte, bool) {
	carryOut := v&0x80 != 0
	var bit0 byte
	if throughCarry {
		bit0 = b2u8(c.Regs.Carry().Read())
	} else {
		bit0 = b2u8(carryOut)
	}
	return v<<1 | bit0, carryOut
}

func (c *CPU) rotateRight(v byte, throughCarry bool) (byte, bool) {
	carryOut := v&0x01 != 0
	var bit7 byte
	if throughCarry {
		bit7 = b2u8(c.Regs.Carry().Read())
	} else {
		bit7 = b2u8(carryOut)
	}
	return v>>1 | bit7<<7, carryOut
}

func shiftLeftArithmetic(v byte) (byte, bool)  { return v << 1, v&0x80 != 0 }
func shiftRightArithmetic(v byte) (byte, bool) { return v>>1 | v&0x80, v&0x01 != 0 }
func shiftRightLogical(v byte) (byte, bool)    { return v >> 1, v&0x01 != 0 }
func swapNibbles(v byte) byte                  { return v<<4 | v>>4 }

// applyRotateShiftFlags is shared by every CB-page rotate/shift (register
// target, as opposed to the accumulator-only 0x07/0x0F/0x17/0x1F
// shortcuts, which have their own variant-dependent Z handling).
func (c *CPU) applyRotateShiftFlags(result byte, carryOut bool) {
	c.Regs.Zero().Write(result == 0)
	c.Regs.Subtract().Write(false)
	c.Regs.HalfCarry().Write(false)
	c.Regs.Carry().Write(carryOut)
	if c.Variant == register.Z80 {
		c.Regs.Sign().Write(result&0x80 != 0)
		c.Regs.ParityOverflow().Write(parity8(result))
	}
}

// accumulatorRotateFlags backs RLCA/RRCA/RLA/RRA: both variants clear N
// and H and set C from the rotate; LR35902 additionally forces Z to
// false unconditionally, while Z80 leaves S, Z and P/V untouched.
func (c *CPU) accumulatorRotateFlags(carryOut bool) {
	c.Regs.Subtract().Write(false)
	c.Regs.HalfCarry().Write(false)
	c.Regs.Carry().Write(carryOut)
	if c.Variant == register.LR35902 {
		c.Regs.Zero().Write(false)
	}
}

// swapFlags backs the LR35902 CB 0x30-0x37 SWAP family: Z on the result,
// N, H and C always cleared.
func (c *CPU) swapFlags(result byte) {
	c.Regs.Zero().Write(result == 0)
	c.Regs.Subtract().Write(false)
	c.Regs.HalfCarry().Write(false)
	c.Regs.Carry().Write(false)
}

// bitTestFlags backs CB BIT b,r: Z mirrors the tested bit, H is always
// set, N always cleared, C untouched. Z80 additionally mirrors Z into
// P/V and sets S only when testing bit 7 of a set bit.
func (c *CPU) bitTestFlags(bit byte, value byte) {
	isSet := value&(1<<bit) != 0
	c.Regs.Zero().Write(!isSet)
	c.Regs.Subtract().Write(false)
	c.Regs.HalfCarry().Write(true)
	if c.Variant == register.Z80 {
		c.Regs.ParityOverflow().Write(!isSet)
		c.Regs.Sign().Write(bit == 7 && isSet)
	}
}
