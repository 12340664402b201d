package cpu

import (
	"math/rand"
	"testing"

	"github.com/zotley-labs/duocore/bus"
	"github.com/zotley-labs/duocore/register"
)

func newTestRig(variant register.Variant) (*CPU, *bus.Bus, *bus.Ram) {
	b := bus.New()
	ram := bus.NewRam(0x0000, 0x10000)
	if err := b.Register(ram, ram.FirstAddress(), ram.LastAddress()); err != nil {
		panic(err)
	}
	regs := register.New(variant, rand.New(rand.NewSource(1)))
	c := New(variant, b, regs)
	c.Regs.PC = 0x0100
	c.Regs.SP = 0xFFFE
	return c, b, ram
}

func requireEqualU8(t *testing.T, label string, got, want byte) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%02X, want 0x%02X", label, got, want)
	}
}

// TestDecB half-carry and zero flag per spec.md scenario S2: DEC B with
// B=0x01 must clear H.
func TestDecB(t *testing.T) {
	c, b, _ := newTestRig(register.Z80)
	c.Regs.B = 0x01
	b.Write8(0x0100, 0x05) // DEC B
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	requireEqualU8(t, "B", c.Regs.B, 0x00)
	if !c.Regs.Zero().Read() {
		t.Fatal("Zero should be set")
	}
	if c.Regs.HalfCarry().Read() {
		t.Fatal("HalfCarry should be clear")
	}
}

// TestDecBHalfCarry per spec.md scenario S3: DEC B with B=0x10 must set H.
func TestDecBHalfCarry(t *testing.T) {
	c, b, _ := newTestRig(register.Z80)
	c.Regs.B = 0x10
	b.Write8(0x0100, 0x05) // DEC B
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	requireEqualU8(t, "B", c.Regs.B, 0x0F)
	if !c.Regs.HalfCarry().Read() {
		t.Fatal("HalfCarry should be set")
	}
}

// TestLDHLPlusA covers the LR35902's LD (HL+),A autoincrement (scenario S4).
func TestLDHLPlusA(t *testing.T) {
	c, b, _ := newTestRig(register.LR35902)
	c.Regs.SetHL(0xC000)
	c.Regs.A = 0x42
	b.Write8(0x0100, 0x22) // LD (HL+),A
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	requireEqualU8(t, "(0xC000)", b.Read8(0xC000), 0x42)
	if c.Regs.HL() != 0xC001 {
		t.Fatalf("HL = 0x%04X, want 0xC001", c.Regs.HL())
	}
}

// TestEIDeferredOneInstruction covers invariant 6: EI's effect is delayed
// until after the instruction that follows it.
func TestEIDeferredOneInstruction(t *testing.T) {
	c, b, _ := newTestRig(register.Z80)
	b.Write8(0x0100, 0xFB) // EI
	b.Write8(0x0101, 0x00) // NOP
	b.Write8(0x0102, 0x00) // NOP

	if _, err := c.Step(); err != nil { // execute EI
		t.Fatal(err)
	}
	if c.Regs.IFF1 {
		t.Fatal("IFF1 must not be set immediately after EI")
	}
	if _, err := c.Step(); err != nil { // execute the following NOP
		t.Fatal(err)
	}
	if !c.Regs.IFF1 || !c.Regs.IFF2 {
		t.Fatal("IFF1/IFF2 must be set once the instruction after EI completes")
	}
}

// TestDIClearsPendingEI ensures DI immediately after EI cancels the
// deferred enable rather than letting it fire on the next step.
func TestDIClearsPendingEI(t *testing.T) {
	c, b, _ := newTestRig(register.Z80)
	b.Write8(0x0100, 0xFB) // EI
	b.Write8(0x0101, 0xF3) // DI
	b.Write8(0x0102, 0x00) // NOP

	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Regs.IFF1 {
		t.Fatal("DI should have cancelled the pending EI")
	}
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Regs.IFF1 {
		t.Fatal("IFF1 must stay clear after DI cancelled EI")
	}
}

// TestUnknownOpcodeIsFatal covers spec.md §7: a decode error stops the CPU.
func TestUnknownOpcodeIsFatal(t *testing.T) {
	c, b, _ := newTestRig(register.LR35902)
	b.Write8(0x0100, 0xED) // not valid on LR35902 at all
	if _, err := c.Step(); err == nil {
		t.Fatal("expected a decode error")
	}
	if c.Running() {
		t.Fatal("CPU should stop running after a decode error")
	}
	if _, err := c.Step(); err != nil {
		t.Fatal("Step on a stopped CPU should be a no-op, not re-raise")
	}
}

// TestPushPopRoundTrip exercises the stack through PUSH BC then POP DE.
func TestPushPopRoundTrip(t *testing.T) {
	c, b, _ := newTestRig(register.Z80)
	c.Regs.SetBC(0xBEEF)
	b.Write8(0x0100, 0xC5) // PUSH BC
	b.Write8(0x0101, 0xD1) // POP DE
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Regs.DE() != 0xBEEF {
		t.Fatalf("DE = 0x%04X, want 0xBEEF", c.Regs.DE())
	}
	if c.Regs.SP != 0xFFFE {
		t.Fatalf("SP = 0x%04X, want 0xFFFE (balanced push/pop)", c.Regs.SP)
	}
}

// TestCallAndRet exercises the debugging Call helper end to end.
func TestCallAndRet(t *testing.T) {
	c, b, _ := newTestRig(register.Z80)
	// At 0x0200: LD A,0x7A ; RET
	b.Write8(0x0200, 0x3E)
	b.Write8(0x0201, 0x7A)
	b.Write8(0x0202, 0xC9)

	if err := c.Call(0x0200); err != nil {
		t.Fatal(err)
	}
	requireEqualU8(t, "A", c.Regs.A, 0x7A)
	if c.Regs.PC != 0x0100 {
		t.Fatalf("PC = 0x%04X, want return to 0x0100", c.Regs.PC)
	}
}

// TestGBOpcodeDivergence checks one variant-specific opcode on each CPU:
// 0x08 runs EX AF,AF' on Z80 (the LR35902 has no such instruction), and
// 0x22 runs LD (HL+),A on LR35902.
func TestGBOpcodeDivergence(t *testing.T) {
	z80, zb, _ := newTestRig(register.Z80)
	zb.Write8(0x0100, 0x08) // EX AF,AF' on Z80
	z80.Regs.SetAF(0x1234)
	z80.Regs.SetAF2(0x5678)
	if _, err := z80.Step(); err != nil {
		t.Fatal(err)
	}
	if z80.Regs.AF() != 0x5678 {
		t.Fatalf("Z80 AF after EX AF,AF' = 0x%04X, want 0x5678", z80.Regs.AF())
	}

	gb, gbb, _ := newTestRig(register.LR35902)
	gb.Regs.SetHL(0xC010)
	gb.Regs.A = 0x99
	gbb.Write8(0x0100, 0x22) // LD (HL+),A on LR35902
	if _, err := gb.Step(); err != nil {
		t.Fatal(err)
	}
	requireEqualU8(t, "(0xC010)", gbb.Read8(0xC010), 0x99)
}

// TestBitInstructionLeavesCarryUntouched covers CB BIT b,r's flag rule.
func TestBitInstructionLeavesCarryUntouched(t *testing.T) {
	c, b, _ := newTestRig(register.Z80)
	c.Regs.Carry().Write(true)
	c.Regs.B = 0x00
	b.Write8(0x0100, 0xCB)
	b.Write8(0x0101, 0x40) // BIT 0,B
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if !c.Regs.Zero().Read() {
		t.Fatal("BIT 0,B with B=0 should set Zero")
	}
	if !c.Regs.Carry().Read() {
		t.Fatal("BIT must not touch Carry")
	}
}

// TestSwapOnlyOnGameBoy exercises the CB 0x30-0x37 variant divergence.
func TestSwapOnlyOnGameBoy(t *testing.T) {
	gb, gbb, _ := newTestRig(register.LR35902)
	gb.Regs.A = 0xAB
	gbb.Write8(0x0100, 0xCB)
	gbb.Write8(0x0101, 0x37) // SWAP A
	if _, err := gb.Step(); err != nil {
		t.Fatal(err)
	}
	requireEqualU8(t, "A", gb.Regs.A, 0xBA)
}
