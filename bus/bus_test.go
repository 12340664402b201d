package bus

import "testing"

func TestRegisterRejectsOverlap(t *testing.T) {
	b := New()
	ram1 := NewRam(0xC000, 0x100)
	ram2 := NewRam(0xC0F0, 0x100)

	if err := b.Register(ram1, ram1.FirstAddress(), ram1.LastAddress()); err != nil {
		t.Fatalf("unexpected error registering ram1: %v", err)
	}
	err := b.Register(ram2, ram2.FirstAddress(), ram2.LastAddress())
	if err == nil {
		t.Fatalf("expected overlap error, got nil")
	}
	if _, ok := err.(*OverlapError); !ok {
		t.Fatalf("expected *OverlapError, got %T", err)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	b := New()
	ram := NewRam(0xC000, 0x10)
	if err := b.Register(ram, 0xC000, 0xC00F); err != nil {
		t.Fatalf("register: %v", err)
	}
	b.Write8(0xC005, 0x42)
	if got := b.Read8(0xC005); got != 0x42 {
		t.Fatalf("Read8 = 0x%02X, want 0x42", got)
	}
}

func TestUnmappedReadReturnsSentinelWriteDropped(t *testing.T) {
	b := New()
	if got := b.Read8(0x9999); got != UnmappedSentinel {
		t.Fatalf("Read8(unmapped) = 0x%02X, want 0x%02X", got, UnmappedSentinel)
	}
	b.Write8(0x9999, 0x01) // must not panic
}

func TestLittleEndianWord(t *testing.T) {
	b := New()
	ram2 := NewRam(0xFFF0, 0x10)
	if err := b.Register(ram2, 0xFFF0, 0xFFFF); err != nil {
		t.Fatalf("register: %v", err)
	}
	b.Write16(0xFFF0, 0xBEEF)
	if got := b.Read16(0xFFF0); got != 0xBEEF {
		t.Fatalf("Read16 = 0x%04X, want 0xBEEF", got)
	}
	if lo, hi := b.Read8(0xFFF0), b.Read8(0xFFF1); uint16(hi)<<8|uint16(lo) != 0xBEEF {
		t.Fatalf("manual little-endian reconstruction mismatch: lo=0x%02X hi=0x%02X", lo, hi)
	}
}

func TestWordWrapAtTopOfAddressSpace(t *testing.T) {
	b := New()
	ram := NewRam(0x0000, 0x1)
	top := NewRam(0xFFFF, 0x1)
	if err := b.Register(ram, 0x0000, 0x0000); err != nil {
		t.Fatalf("register ram: %v", err)
	}
	if err := b.Register(top, 0xFFFF, 0xFFFF); err != nil {
		t.Fatalf("register top: %v", err)
	}
	b.Write16(0xFFFF, 0x1234)
	if got := b.Read8(0xFFFF); got != 0x34 {
		t.Fatalf("low byte at 0xFFFF = 0x%02X, want 0x34", got)
	}
	if got := b.Read8(0x0000); got != 0x12 {
		t.Fatalf("high byte wrapped to 0x0000 = 0x%02X, want 0x12", got)
	}
}
