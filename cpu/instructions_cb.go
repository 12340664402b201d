package cpu

// init populates the 0xCB-prefixed bit-operation page shared by both
// variants. Rather than writing 256 cases out by hand, the eight
// rotate/shift families, BIT, RES and SET are generated from the 3-bit
// register field and (where applicable) the 3-bit bit-index field, then
// copied into both z80CBTable and gbCBTable — after which the one block
// that actually differs (0x30-0x37: Z80's undocumented SLL vs the
// LR35902's SWAP) is patched into each table separately.
func init() {
	var shared [256]decodeFunc

	for r := byte(0); r < 8; r++ {
		reg := r
		cyc := cbCycles(reg)
		wcyc := cbWriteCycles(reg)

		shared[0x00|reg] = rotateShiftEntry(reg, wcyc, "RLC r", func(c *CPU, v byte) (byte, bool) { return c.rotateLeft(v, false) })
		shared[0x08|reg] = rotateShiftEntry(reg, wcyc, "RRC r", func(c *CPU, v byte) (byte, bool) { return c.rotateRight(v, false) })
		shared[0x10|reg] = rotateShiftEntry(reg, wcyc, "RL r", func(c *CPU, v byte) (byte, bool) { return c.rotateLeft(v, true) })
		shared[0x18|reg] = rotateShiftEntry(reg, wcyc, "RR r", func(c *CPU, v byte) (byte, bool) { return c.rotateRight(v, true) })
		shared[0x20|reg] = rotateShiftEntry(reg, wcyc, "SLA r", func(c *CPU, v byte) (byte, bool) { return shiftLeftArithmetic(v) })
		shared[0x28|reg] = rotateShiftEntry(reg, wcyc, "SRA r", func(c *CPU, v byte) (byte, bool) { return shiftRightArithmetic(v) })
		shared[0x38|reg] = rotateShiftEntry(reg, wcyc, "SRL r", func(c *CPU, v byte) (byte, bool) { return shiftRightLogical(v) })

		for bit := byte(0); bit < 8; bit++ {
			b := bit
			opcode := 0x40 | b<<3 | reg
			shared[opcode] = func(c *CPU, _ byte) *Instruction {
				return &Instruction{Mnemonic: "BIT b,r", Length: 2, Cycles: cyc, Exec: func(c *CPU) {
					v := c.reg8(reg).ReadByte()
					c.tick(cyc)
					c.bitTestFlags(b, v)
				}}
			}
			resOpcode := 0x80 | b<<3 | reg
			shared[resOpcode] = func(c *CPU, _ byte) *Instruction {
				return &Instruction{Mnemonic: "RES b,r", Length: 2, Cycles: cbWriteCycles(reg), Exec: func(c *CPU) {
					op := c.reg8(reg)
					v := op.ReadByte()
					c.tick(cbWriteCycles(reg))
					op.WriteByte(v &^ (1 << b))
				}}
			}
			setOpcode := 0xC0 | b<<3 | reg
			shared[setOpcode] = func(c *CPU, _ byte) *Instruction {
				return &Instruction{Mnemonic: "SET b,r", Length: 2, Cycles: cbWriteCycles(reg), Exec: func(c *CPU) {
					op := c.reg8(reg)
					v := op.ReadByte()
					c.tick(cbWriteCycles(reg))
					op.WriteByte(v | 1<<b)
				}}
			}
		}
	}

	z80CBTable = shared
	gbCBTable = shared

	// 0x30-0x37 diverges: Z80's undocumented SLL sets bit 0 instead of
	// clearing it; the LR35902 has no SLL, only SWAP.
	for r := byte(0); r < 8; r++ {
		reg := r
		cyc := cbWriteCycles(reg)
		z80CBTable[0x30|reg] = rotateShiftEntry(reg, cyc, "SLL r", func(c *CPU, v byte) (byte, bool) {
			return v<<1 | 1, v&0x80 != 0
		})
		gbCBTable[0x30|reg] = func(c *CPU, _ byte) *Instruction {
			return &Instruction{Mnemonic: "SWAP r", Length: 2, Cycles: cyc, Exec: func(c *CPU) {
				op := c.reg8(reg)
				v := op.ReadByte()
				c.tick(cyc)
				result := swapNibbles(v)
				op.WriteByte(result)
				c.swapFlags(result)
			}}
		}
	}
}

func rotateShiftEntry(reg byte, cyc int, mnemonic string, f func(c *CPU, v byte) (byte, bool)) decodeFunc {
	return func(c *CPU, _ byte) *Instruction {
		return &Instruction{Mnemonic: mnemonic, Length: 2, Cycles: cyc, Exec: func(c *CPU) {
			op := c.reg8(reg)
			v := op.ReadByte()
			c.tick(cyc)
			result, carry := f(c, v)
			op.WriteByte(result)
			c.applyRotateShiftFlags(result, carry)
		}}
	}
}

// cbCycles and cbWriteCycles account for the (HL) operand's extra bus
// round trips: BIT b,(HL) reads once (12 cycles), while anything that
// writes back through (HL) pays for both the read and the write (15).
func cbCycles(reg byte) int {
	if reg == 6 {
		return 12
	}
	return 8
}

func cbWriteCycles(reg byte) int {
	if reg == 6 {
		return 15
	}
	return 8
}
