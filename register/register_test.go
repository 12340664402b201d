package register

import (
	"math/rand"
	"testing"
)

func newDeterministic(t *testing.T, v Variant) *File {
	t.Helper()
	return New(v, rand.New(rand.NewSource(1)))
}

func requireEqualU16(t *testing.T, name string, got, want uint16) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got 0x%04X, want 0x%04X", name, got, want)
	}
}

func requireEqualU8(t *testing.T, name string, got, want byte) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got 0x%02X, want 0x%02X", name, got, want)
	}
}

func TestNewSetsArchitecturalDefaults(t *testing.T) {
	f := newDeterministic(t, Z80)
	requireEqualU8(t, "A", f.A, 0xFF)
	requireEqualU8(t, "F", f.F, 0xFF)
	requireEqualU16(t, "SP", f.SP, 0xFFFF)
	requireEqualU16(t, "PC", f.PC, 0x0000)
}

func TestLR35902LowNibbleAlwaysZero(t *testing.T) {
	f := newDeterministic(t, LR35902)
	requireEqualU8(t, "F&0x0F", f.F&0x0F, 0x00)

	f.SetF(0xFF)
	requireEqualU8(t, "F&0x0F after SetF(0xFF)", f.F&0x0F, 0x00)

	f.SetAF(0xAAFF)
	requireEqualU8(t, "F&0x0F after SetAF", f.F&0x0F, 0x00)
}

func TestPairCoherence(t *testing.T) {
	f := newDeterministic(t, Z80)

	f.SetBC(0x1234)
	requireEqualU8(t, "B", f.B, 0x12)
	requireEqualU8(t, "C", f.C, 0x34)
	requireEqualU16(t, "BC", f.BC(), 0x1234)

	f.D, f.E = 0x56, 0x78
	requireEqualU16(t, "DE", f.DE(), 0x5678)

	f.SetHL(0xC000)
	requireEqualU16(t, "HL", f.HL(), 0xC000)
	requireEqualU8(t, "H", f.H, 0xC0)
	requireEqualU8(t, "L", f.L, 0x00)
}

func TestFlagProjection(t *testing.T) {
	f := newDeterministic(t, Z80)
	f.F = 0x00

	f.Zero().Write(true)
	requireEqualU8(t, "F after Zero.Write(true)", f.F, 0x40)
	if !f.Zero().Read() {
		t.Fatalf("Zero().Read() = false, want true")
	}

	f.Zero().Write(false)
	requireEqualU8(t, "F after Zero.Write(false)", f.F, 0x00)
}

func TestGameBoyFlagBitPositions(t *testing.T) {
	f := newDeterministic(t, LR35902)
	f.SetF(0x00)

	f.Zero().Write(true)
	f.Subtract().Write(true)
	f.HalfCarry().Write(true)
	f.Carry().Write(true)
	requireEqualU8(t, "F", f.F, 0xF0)
}

func TestExxAndExAFSwapShadowSet(t *testing.T) {
	f := newDeterministic(t, Z80)
	f.A, f.F = 0x11, 0x22
	f.A2, f.F2 = 0x33, 0x44

	f.ExAF()
	requireEqualU8(t, "A after ExAF", f.A, 0x33)
	requireEqualU8(t, "A2 after ExAF", f.A2, 0x11)

	f.SetBC(0x1111)
	f.SetBC2(0x2222)
	f.Exx()
	requireEqualU16(t, "BC after Exx", f.BC(), 0x2222)
	requireEqualU16(t, "BC2 after Exx", f.BC2(), 0x1111)
}
