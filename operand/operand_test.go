package operand

import "testing"

type fakeBus struct{ mem [0x10000]byte }

func (b *fakeBus) Read8(addr uint16) byte     { return b.mem[addr] }
func (b *fakeBus) Write8(addr uint16, v byte) { b.mem[addr] = v }

func TestRegByteRoundTrip(t *testing.T) {
	var backing byte = 0x10
	r := RegByte{Ptr: &backing}
	r.WriteByte(0x42)
	if r.ReadByte() != 0x42 || backing != 0x42 {
		t.Fatalf("RegByte did not write through backing storage")
	}
}

func TestRegWordSharesStorageWithBytes(t *testing.T) {
	var hi, lo byte
	pair := RegWord{
		Get: func() uint16 { return uint16(hi)<<8 | uint16(lo) },
		Set: func(v uint16) { hi, lo = byte(v>>8), byte(v) },
	}
	pair.WriteWord(0xBEEF)
	if hi != 0xBE || lo != 0xEF {
		t.Fatalf("pair write did not split into backers: hi=0x%02X lo=0x%02X", hi, lo)
	}
	hi = 0x12
	if pair.ReadWord() != 0x12EF {
		t.Fatalf("pair read did not reflect direct write to backer: got 0x%04X", pair.ReadWord())
	}
}

func TestIndirectByteGoesThroughBus(t *testing.T) {
	b := &fakeBus{}
	addr := ImmWord(0xC000)
	ptr := IndirectByte{Addr: addr, Bus: b}
	ptr.WriteByte(0x77)
	if b.mem[0xC000] != 0x77 {
		t.Fatalf("IndirectByte.WriteByte did not reach the bus")
	}
	if ptr.ReadByte() != 0x77 {
		t.Fatalf("IndirectByte.ReadByte = 0x%02X, want 0x77", ptr.ReadByte())
	}
}

func TestHighPagePointerUnsignedOffset(t *testing.T) {
	b := &fakeBus{}
	p := HighPagePointer{Base: 0xFF00, Offset: ImmByte(0x80), Bus: b}
	p.WriteByte(0x99)
	if b.mem[0xFF80] != 0x99 {
		t.Fatalf("HighPagePointer wrote to wrong address")
	}
}

func TestHighPagePointerSignedOffsetSignExtends(t *testing.T) {
	b := &fakeBus{}
	p := HighPagePointer{Base: 0x1000, Offset: SignedImmByte(-1), Bus: b}
	if got := p.ReadWord(); got != 0x0FFF {
		t.Fatalf("signed offset -1 from 0x1000 = 0x%04X, want 0x0FFF", got)
	}
}
