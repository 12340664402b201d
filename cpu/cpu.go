// Package cpu implements the instruction-driven interpreter shared by the
// Z80 and LR35902 variants: the register file and flags live in package
// register, memory access goes through package bus, and this package
// supplies the decoder, the instruction set, and the fetch-decode-execute
// loop (spec.md §4.4).
package cpu

import (
	"fmt"

	"github.com/zotley-labs/duocore/bus"
	"github.com/zotley-labs/duocore/register"
)

// Instruction is a decoded, ready-to-run unit of work. Decoding consumes
// only the opcode byte (and any 0xCB/0xED prefix); immediate operands are
// read from the bus, advancing PC past them, when Exec runs, and register
// operands are bound inside Exec as well. Step does not return the
// Instruction it ran, only the cycle count.
type Instruction struct {
	Mnemonic string
	Length   int
	Cycles   int
	Exec     func(c *CPU)
}

// decodeFunc returns the Instruction for opcode without reading any
// immediate bytes; the returned Exec fetches those itself (via
// c.fetchByte/c.fetchWord, which also advance PC). Returning nil means "this opcode isn't defined on this
// table" so the caller can fall back or report a decode error.
type decodeFunc func(c *CPU, opcode byte) *Instruction

// DecodeError is the fatal condition from spec.md §7: an opcode with no
// entry in either the per-variant table or the shared table.
type DecodeError struct {
	PC     uint16
	Opcode byte
	Prefix bool
}

func (e *DecodeError) Error() string {
	if e.Prefix {
		return fmt.Sprintf("cpu: unrecognized opcode 0xCB 0x%02X at PC=0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("cpu: unrecognized opcode 0x%02X at PC=0x%04X", e.Opcode, e.PC)
}

// CPU is the shared interpreter for both variants. Which opcode table
// overrides the shared one, and which flag-effect routines ALU
// instructions call, are selected once at construction by Variant
// (spec.md §9's "dual-variant instruction dispatch": one op body plus one
// flag hook per variant, not a type hierarchy).
type CPU struct {
	Regs    *register.File
	Bus     *bus.Bus
	Variant register.Variant

	Halted  bool
	running bool
	Cycles  uint64

	// iffDelay implements EI's one-instruction deferral (spec.md §4.4,
	// §9): EI sets this to 2; it is decremented after every instruction,
	// including the one immediately following EI, and IFF1/IFF2 only
	// flip to true when it reaches zero.
	iffDelay int

	variantTable *[256]decodeFunc
	cbTable      *[256]decodeFunc

	// LastErr is set and running cleared when Step hits a DecodeError,
	// matching spec.md §7: decode errors are fatal, not retried.
	LastErr error
}

// New constructs a CPU for variant, wired to bus.
func New(variant register.Variant, b *bus.Bus, regs *register.File) *CPU {
	c := &CPU{Regs: regs, Bus: b, Variant: variant, running: true}
	if variant == register.LR35902 {
		c.variantTable = &gbTable
		c.cbTable = &gbCBTable
	} else {
		c.variantTable = &z80Table
		c.cbTable = &z80CBTable
	}
	return c
}

func (c *CPU) Running() bool     { return c.running }
func (c *CPU) SetRunning(v bool) { c.running = v }

// SetPC, SetSP and SetA are the CPU's write accessors from spec.md §6;
// everything else is observed directly via Regs.
func (c *CPU) SetPC(v uint16) { c.Regs.PC = v }
func (c *CPU) SetSP(v uint16) { c.Regs.SP = v }
func (c *CPU) SetA(v byte)    { c.Regs.A = v }

func (c *CPU) fetchOpcode() byte {
	op := c.Bus.Read8(c.Regs.PC)
	c.Regs.PC++
	if c.Variant == register.Z80 {
		c.Regs.R = (c.Regs.R & 0x80) | ((c.Regs.R + 1) & 0x7F)
	}
	return op
}

func (c *CPU) fetchByte() byte {
	v := c.Bus.Read8(c.Regs.PC)
	c.Regs.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) tick(cycles int) { c.Cycles += uint64(cycles) }

func (c *CPU) push(v uint16) {
	c.Regs.SP -= 2
	c.Bus.Write16(c.Regs.SP, v)
}

func (c *CPU) pop() uint16 {
	v := c.Bus.Read16(c.Regs.SP)
	c.Regs.SP += 2
	return v
}

// decode fetches and decodes exactly one instruction, without running it.
func (c *CPU) decode() (*Instruction, error) {
	pc := c.Regs.PC
	opcode := c.fetchOpcode()

	if opcode == 0xCB {
		cbPC := c.Regs.PC
		cbOp := c.fetchByte()
		if fn := c.cbTable[cbOp]; fn != nil {
			return fn(c, cbOp), nil
		}
		return nil, &DecodeError{PC: cbPC - 1, Opcode: cbOp, Prefix: true}
	}

	if opcode == 0xED && c.Variant == register.Z80 {
		edPC := c.Regs.PC
		edOp := c.fetchByte()
		if fn := z80EDTable[edOp]; fn != nil {
			return fn(c, edOp), nil
		}
		return nil, &DecodeError{PC: edPC - 1, Opcode: edOp, Prefix: true}
	}

	if fn := c.variantTable[opcode]; fn != nil {
		return fn(c, opcode), nil
	}
	if fn := commonTable[opcode]; fn != nil {
		return fn(c, opcode), nil
	}
	return nil, &DecodeError{PC: pc, Opcode: opcode}
}

// Step fetches, decodes and executes exactly one instruction, applying the
// deferred interrupt-enable after it completes (spec.md §4.4, §9: "ensure
// the consumer path covers every exit from execute_one, including those
// that raise decode errors"). It returns the cycle count consumed, or an
// error if decoding failed — the CPU then stops running (Running reports
// false) and will not advance on subsequent Step calls.
func (c *CPU) Step() (int, error) {
	if !c.running {
		return 0, nil
	}
	if c.Halted {
		c.tick(4)
		c.finishInstruction()
		return 4, nil
	}

	before := c.Cycles
	instr, err := c.decode()
	if err != nil {
		c.running = false
		c.LastErr = err
		c.finishInstruction()
		return 0, err
	}
	instr.Exec(c)
	c.finishInstruction()
	return int(c.Cycles - before), nil
}

func (c *CPU) finishInstruction() {
	if c.iffDelay > 0 {
		c.iffDelay--
		if c.iffDelay == 0 {
			c.Regs.IFF1 = true
			c.Regs.IFF2 = true
		}
	}
}

// Call is the debugging helper from spec.md §4.4: it synthesizes a CALL to
// addr, then steps until PC returns to its pre-call value. It is a host
// convenience to run a known-good routine to completion, not part of the
// interrupt or scheduling model.
func (c *CPU) Call(addr uint16) error {
	returnPC := c.Regs.PC
	c.push(returnPC)
	c.Regs.PC = addr
	c.tick(17)
	for c.Regs.PC != returnPC {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
