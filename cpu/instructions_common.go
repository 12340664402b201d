package cpu

// init populates commonTable: every opcode whose encoding and execution
// are identical on Z80 and LR35902. The regular families (LD r,r' and the
// ALU A,r grid) are generated from the 3-bit register encoding rather
// than written out 63/56 times by hand — spec.md §9 recommends exactly
// this kind of runtime-checked table generation over a type hierarchy.
func init() {
	// 0x40-0x7F: LD r,r'. 0x76 is HALT, not LD (HL),(HL).
	for dst := byte(0); dst < 8; dst++ {
		for src := byte(0); src < 8; src++ {
			opcode := 0x40 | dst<<3 | src
			if opcode == 0x76 {
				continue
			}
			d, s := dst, src
			commonTable[opcode] = func(c *CPU, _ byte) *Instruction {
				return &Instruction{Mnemonic: "LD r,r'", Length: 1, Cycles: ldCycles(d, s), Exec: func(c *CPU) {
					c.tick(ldCycles(d, s))
					c.reg8(d).WriteByte(c.reg8(s).ReadByte())
				}}
			}
		}
	}
	commonTable[0x76] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "HALT", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			c.Halted = true
		}}
	}

	// 0x80-0xBF: ALU A,r (ADD,ADC,SUB,SBC,AND,XOR,OR,CP).
	for op := byte(0); op < 8; op++ {
		for src := byte(0); src < 8; src++ {
			opcode := 0x80 | op<<3 | src
			o, s := op, src
			commonTable[opcode] = func(c *CPU, _ byte) *Instruction {
				cyc := 4
				if s == 6 {
					cyc = 7
				}
				return &Instruction{Mnemonic: "ALU A,r", Length: 1, Cycles: cyc, Exec: func(c *CPU) {
					v := c.reg8(s).ReadByte()
					c.tick(cyc)
					c.alu8(o, v)
				}}
			}
		}
	}

	// 0x06,0x0E,...,0x3E: LD r,n (8-bit immediate).
	for dst := byte(0); dst < 8; dst++ {
		opcode := 0x06 | dst<<3
		d := dst
		commonTable[opcode] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "LD r,n", Length: 2, Exec: func(c *CPU) {
				n := c.fetchByte()
				cyc := 7
				if d == 6 {
					cyc = 10
				}
				c.tick(cyc)
				c.reg8(d).WriteByte(n)
			}}
		}
	}

	// 0xC6,0xCE,...,0xFE: ALU A,n.
	for op := byte(0); op < 8; op++ {
		opcode := 0xC6 | op<<3
		o := op
		commonTable[opcode] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "ALU A,n", Length: 2, Cycles: 7, Exec: func(c *CPU) {
				n := c.fetchByte()
				c.tick(7)
				c.alu8(o, n)
			}}
		}
	}

	// 0x04,0x0C,...,0x3C: INC r8. 0x05,0x0D,...,0x3D: DEC r8.
	for r := byte(0); r < 8; r++ {
		reg := r
		commonTable[0x04|reg<<3] = func(c *CPU, _ byte) *Instruction {
			cyc := 4
			if reg == 6 {
				cyc = 11
			}
			return &Instruction{Mnemonic: "INC r", Length: 1, Cycles: cyc, Exec: func(c *CPU) {
				op := c.reg8(reg)
				v := op.ReadByte()
				c.tick(cyc)
				op.WriteByte(c.incDec8(v, false))
			}}
		}
		commonTable[0x05|reg<<3] = func(c *CPU, _ byte) *Instruction {
			cyc := 4
			if reg == 6 {
				cyc = 11
			}
			return &Instruction{Mnemonic: "DEC r", Length: 1, Cycles: cyc, Exec: func(c *CPU) {
				op := c.reg8(reg)
				v := op.ReadByte()
				c.tick(cyc)
				op.WriteByte(c.incDec8(v, true))
			}}
		}
	}

	// 0x01,0x11,0x21,0x31: LD rr,nn. 0x03,0x13,0x23,0x33: INC rr.
	// 0x0B,0x1B,0x2B,0x3B: DEC rr. 0x09,0x19,0x29,0x39: ADD HL,rr.
	for p := byte(0); p < 4; p++ {
		pair := p
		commonTable[0x01|pair<<4] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "LD rr,nn", Length: 3, Cycles: 10, Exec: func(c *CPU) {
				nn := c.fetchWord()
				c.tick(10)
				c.regPairSP(pair).WriteWord(nn)
			}}
		}
		commonTable[0x03|pair<<4] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "INC rr", Length: 1, Cycles: 6, Exec: func(c *CPU) {
				op := c.regPairSP(pair)
				c.tick(6)
				op.WriteWord(op.ReadWord() + 1)
			}}
		}
		commonTable[0x0B|pair<<4] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "DEC rr", Length: 1, Cycles: 6, Exec: func(c *CPU) {
				op := c.regPairSP(pair)
				c.tick(6)
				op.WriteWord(op.ReadWord() - 1)
			}}
		}
		commonTable[0x09|pair<<4] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "ADD HL,rr", Length: 1, Cycles: 11, Exec: func(c *CPU) {
				v := c.regPairSP(pair).ReadWord()
				c.tick(11)
				c.addHL16(v)
			}}
		}
	}

	// 0xC1/0xD1/0xE1/0xF1 POP, 0xC5/0xD5/0xE5/0xF5 PUSH over {BC,DE,HL,AF}.
	for p := byte(0); p < 4; p++ {
		pair := p
		commonTable[0xC1|pair<<4] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "POP rr", Length: 1, Cycles: 10, Exec: func(c *CPU) {
				c.tick(10)
				c.regPairAF(pair).WriteWord(c.pop())
			}}
		}
		commonTable[0xC5|pair<<4] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "PUSH rr", Length: 1, Cycles: 11, Exec: func(c *CPU) {
				v := c.regPairAF(pair).ReadWord()
				c.tick(11)
				c.push(v)
			}}
		}
	}

	// Conditional jumps/calls/returns shared by both variants: NZ,Z,NC,C.
	for cc := byte(0); cc < 4; cc++ {
		condition := cc
		commonTable[0x20|condition<<3] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "JR cc,e", Length: 2, Exec: func(c *CPU) {
				e := int8(c.fetchByte())
				if c.cond(condition) {
					c.tick(12)
					c.Regs.PC = uint16(int32(c.Regs.PC) + int32(e))
				} else {
					c.tick(7)
				}
			}}
		}
		commonTable[0xC2|condition<<3] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "JP cc,nn", Length: 3, Exec: func(c *CPU) {
				nn := c.fetchWord()
				c.tick(10)
				if c.cond(condition) {
					c.Regs.PC = nn
				}
			}}
		}
		commonTable[0xC4|condition<<3] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "CALL cc,nn", Length: 3, Exec: func(c *CPU) {
				nn := c.fetchWord()
				if c.cond(condition) {
					c.tick(17)
					c.push(c.Regs.PC)
					c.Regs.PC = nn
				} else {
					c.tick(10)
				}
			}}
		}
		commonTable[0xC0|condition<<3] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "RET cc", Length: 1, Exec: func(c *CPU) {
				if c.cond(condition) {
					c.tick(11)
					c.Regs.PC = c.pop()
				} else {
					c.tick(5)
				}
			}}
		}
	}

	// RST n (0xC7,0xCF,...,0xFF).
	for n := byte(0); n < 8; n++ {
		target := n * 8
		commonTable[0xC7|n<<3] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "RST", Length: 1, Cycles: 11, Exec: func(c *CPU) {
				c.tick(11)
				c.push(c.Regs.PC)
				c.Regs.PC = uint16(target)
			}}
		}
	}

	commonTable[0x00] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "NOP", Length: 1, Cycles: 4, Exec: func(c *CPU) { c.tick(4) }}
	}
	commonTable[0x02] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD (BC),A", Length: 1, Cycles: 7, Exec: func(c *CPU) {
			c.tick(7)
			c.Bus.Write8(c.Regs.BC(), c.Regs.A)
		}}
	}
	commonTable[0x0A] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD A,(BC)", Length: 1, Cycles: 7, Exec: func(c *CPU) {
			c.tick(7)
			c.Regs.A = c.Bus.Read8(c.Regs.BC())
		}}
	}
	commonTable[0x12] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD (DE),A", Length: 1, Cycles: 7, Exec: func(c *CPU) {
			c.tick(7)
			c.Bus.Write8(c.Regs.DE(), c.Regs.A)
		}}
	}
	commonTable[0x1A] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD A,(DE)", Length: 1, Cycles: 7, Exec: func(c *CPU) {
			c.tick(7)
			c.Regs.A = c.Bus.Read8(c.Regs.DE())
		}}
	}
	commonTable[0x07] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "RLCA", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			r, carry := c.rotateLeft(c.Regs.A, false)
			c.Regs.A = r
			c.accumulatorRotateFlags(carry)
		}}
	}
	commonTable[0x0F] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "RRCA", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			r, carry := c.rotateRight(c.Regs.A, false)
			c.Regs.A = r
			c.accumulatorRotateFlags(carry)
		}}
	}
	commonTable[0x17] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "RLA", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			r, carry := c.rotateLeft(c.Regs.A, true)
			c.Regs.A = r
			c.accumulatorRotateFlags(carry)
		}}
	}
	commonTable[0x1F] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "RRA", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			r, carry := c.rotateRight(c.Regs.A, true)
			c.Regs.A = r
			c.accumulatorRotateFlags(carry)
		}}
	}
	commonTable[0x2F] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "CPL", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			c.Regs.A = ^c.Regs.A
			c.Regs.Subtract().Write(true)
			c.Regs.HalfCarry().Write(true)
		}}
	}
	commonTable[0x37] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "SCF", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			c.Regs.Subtract().Write(false)
			c.Regs.HalfCarry().Write(false)
			c.Regs.Carry().Write(true)
		}}
	}
	commonTable[0x3F] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "CCF", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			c.Regs.Subtract().Write(false)
			c.Regs.HalfCarry().Write(c.Regs.Carry().Read())
			c.Regs.Carry().Write(!c.Regs.Carry().Read())
		}}
	}
	commonTable[0x18] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "JR e", Length: 2, Cycles: 12, Exec: func(c *CPU) {
			e := int8(c.fetchByte())
			c.tick(12)
			c.Regs.PC = uint16(int32(c.Regs.PC) + int32(e))
		}}
	}
	commonTable[0xC3] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "JP nn", Length: 3, Cycles: 10, Exec: func(c *CPU) {
			nn := c.fetchWord()
			c.tick(10)
			c.Regs.PC = nn
		}}
	}
	commonTable[0xE9] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "JP (HL)", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			c.Regs.PC = c.Regs.HL()
		}}
	}
	commonTable[0xCD] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "CALL nn", Length: 3, Cycles: 17, Exec: func(c *CPU) {
			nn := c.fetchWord()
			c.tick(17)
			c.push(c.Regs.PC)
			c.Regs.PC = nn
		}}
	}
	commonTable[0xC9] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "RET", Length: 1, Cycles: 10, Exec: func(c *CPU) {
			c.tick(10)
			c.Regs.PC = c.pop()
		}}
	}
	commonTable[0xF9] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "LD SP,HL", Length: 1, Cycles: 6, Exec: func(c *CPU) {
			c.tick(6)
			c.Regs.SP = c.Regs.HL()
		}}
	}
	commonTable[0xF3] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "DI", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			c.Regs.IFF1, c.Regs.IFF2 = false, false
			c.iffDelay = 0
		}}
	}
	commonTable[0xFB] = func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: "EI", Length: 1, Cycles: 4, Exec: func(c *CPU) {
			c.tick(4)
			c.iffDelay = 2
		}}
	}
}

// ldCycles accounts for the extra (HL) bus round-trip on LD r,(HL) and
// LD (HL),r relative to the 4-cycle register-to-register form.
func ldCycles(dst, src byte) int {
	if dst == 6 || src == 6 {
		return 7
	}
	return 4
}
