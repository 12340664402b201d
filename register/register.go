// Package register implements the Z80/LR35902 register file: the eight
// named 8-bit registers, the computed 16-bit pair views over them, and the
// per-variant flag bit projections over F.
package register

import "math/rand"

// Variant selects which CPU's register layout and flag semantics apply.
type Variant int

const (
	Z80 Variant = iota
	LR35902
)

func (v Variant) String() string {
	if v == LR35902 {
		return "LR35902"
	}
	return "Z80"
}

// File is the register storage shared by both CPU variants. AF/BC/DE/HL are
// computed views over the byte pairs below, never independent storage —
// writing A then reading AF must observe the write, and vice versa.
type File struct {
	Variant Variant

	A, F byte
	B, C byte
	D, E byte
	H, L byte

	SP, PC uint16

	// Z80-only extensions. LR35902 owns I, R, IFF1, IFF2 but not the shadow
	// register set or IX/IY (spec.md §3).
	I, R       byte
	IFF1, IFF2 bool
	IM         byte

	IX, IY uint16

	A2, F2 byte
	B2, C2 byte
	D2, E2 byte
	H2, L2 byte
}

// New constructs a register file for the given variant. Mirroring real
// hardware, most 8-bit registers power on with arbitrary content; A, F, SP
// and PC are the architecturally-defined exceptions (spec.md §3). Pass nil
// for rng to use the package's default entropy source, or a seeded
// *rand.Rand for reproducible tests.
func New(variant Variant, rng *rand.Rand) *File {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	f := &File{Variant: variant}
	randomize(f, rng)
	f.A = 0xFF
	f.F = 0xFF
	f.SP = 0xFFFF
	f.PC = 0x0000
	if variant == LR35902 {
		f.F &^= 0x0F // low nibble hard-wired zero
	}
	return f
}

func randomize(f *File, rng *rand.Rand) {
	f.B = byte(rng.Intn(256))
	f.C = byte(rng.Intn(256))
	f.D = byte(rng.Intn(256))
	f.E = byte(rng.Intn(256))
	f.H = byte(rng.Intn(256))
	f.L = byte(rng.Intn(256))
	f.I = byte(rng.Intn(256))
	f.R = byte(rng.Intn(256))
	if f.Variant == Z80 {
		f.A2 = byte(rng.Intn(256))
		f.F2 = byte(rng.Intn(256))
		f.B2 = byte(rng.Intn(256))
		f.C2 = byte(rng.Intn(256))
		f.D2 = byte(rng.Intn(256))
		f.E2 = byte(rng.Intn(256))
		f.H2 = byte(rng.Intn(256))
		f.L2 = byte(rng.Intn(256))
		f.IX = uint16(rng.Intn(65536))
		f.IY = uint16(rng.Intn(65536))
	}
}

// AF/BC/DE/HL are computed from, and split into, their byte backers on
// every access — there is no separate 16-bit storage to fall out of sync.

func (f *File) AF() uint16 { return uint16(f.A)<<8 | uint16(f.F) }
func (f *File) BC() uint16 { return uint16(f.B)<<8 | uint16(f.C) }
func (f *File) DE() uint16 { return uint16(f.D)<<8 | uint16(f.E) }
func (f *File) HL() uint16 { return uint16(f.H)<<8 | uint16(f.L) }

func (f *File) SetAF(v uint16) {
	f.A = byte(v >> 8)
	f.F = byte(v)
	if f.Variant == LR35902 {
		f.F &^= 0x0F
	}
}
func (f *File) SetBC(v uint16) { f.B, f.C = byte(v>>8), byte(v) }
func (f *File) SetDE(v uint16) { f.D, f.E = byte(v>>8), byte(v) }
func (f *File) SetHL(v uint16) { f.H, f.L = byte(v>>8), byte(v) }

// AF2/BC2/DE2/HL2 are the Z80 shadow-register pair views; undefined (and
// unused) on LR35902.

func (f *File) AF2() uint16 { return uint16(f.A2)<<8 | uint16(f.F2) }
func (f *File) BC2() uint16 { return uint16(f.B2)<<8 | uint16(f.C2) }
func (f *File) DE2() uint16 { return uint16(f.D2)<<8 | uint16(f.E2) }
func (f *File) HL2() uint16 { return uint16(f.H2)<<8 | uint16(f.L2) }

func (f *File) SetAF2(v uint16) { f.A2, f.F2 = byte(v>>8), byte(v) }
func (f *File) SetBC2(v uint16) { f.B2, f.C2 = byte(v>>8), byte(v) }
func (f *File) SetDE2(v uint16) { f.D2, f.E2 = byte(v>>8), byte(v) }
func (f *File) SetHL2(v uint16) { f.H2, f.L2 = byte(v>>8), byte(v) }

// ExAF exchanges AF with the shadow AF' (Z80-only EX AF,AF').
func (f *File) ExAF() { f.A, f.A2 = f.A2, f.A; f.F, f.F2 = f.F2, f.F }

// Exx exchanges BC/DE/HL with their shadows (Z80-only EXX).
func (f *File) Exx() {
	f.B, f.B2 = f.B2, f.B
	f.C, f.C2 = f.C2, f.C
	f.D, f.D2 = f.D2, f.D
	f.E, f.E2 = f.E2, f.E
	f.H, f.H2 = f.H2, f.H
	f.L, f.L2 = f.L2, f.L
}
