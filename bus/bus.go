// Package bus implements the address-dispatching data bus shared by both
// CPU variants: peripherals register a closed address range and the bus
// forwards every read/write inside that range to the owning peripheral.
package bus

import "fmt"

// Peripheral is anything that can own a range of the address space.
type Peripheral interface {
	FirstAddress() uint16
	LastAddress() uint16
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// UnmappedSentinel is returned for reads outside every registered range —
// the conventional 0xFF (spec.md §3, §4.1).
const UnmappedSentinel byte = 0xFF

type registration struct {
	first, last uint16
	peripheral  Peripheral
}

func (r registration) contains(addr uint16) bool { return addr >= r.first && addr <= r.last }

func (r registration) overlaps(first, last uint16) bool {
	return first <= r.last && last >= r.first
}

// OverlapError reports that two registered ranges share at least one
// address. Registration failures are fatal at startup, not runtime
// (spec.md §7).
type OverlapError struct {
	First, Last             uint16
	ExistingFirst, ExistingLast uint16
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("bus: range [0x%04X,0x%04X] overlaps registered range [0x%04X,0x%04X]",
		e.First, e.Last, e.ExistingFirst, e.ExistingLast)
}

// Bus is the single shared resource between the CPU and its peripherals
// (spec.md §5). It performs a linear scan over registrations on every
// access — the range count is small enough that O(n) is fine (spec.md
// §4.1).
type Bus struct {
	regs []registration

	// Logf is called for every access outside any registered range; it is
	// not checked for nil, so it must be set. New sets it to a no-op so the
	// bus stays side-effect-free unless a host opts in (SPEC_FULL.md §7).
	Logf func(format string, args ...any)
}

// New constructs an empty bus with no peripherals registered.
func New() *Bus {
	return &Bus{Logf: func(string, ...any) {}}
}

// Register inserts peripheral under [first,last], failing if the range
// overlaps any existing registration.
func (b *Bus) Register(p Peripheral, first, last uint16) error {
	for _, r := range b.regs {
		if r.overlaps(first, last) {
			return &OverlapError{First: first, Last: last, ExistingFirst: r.first, ExistingLast: r.last}
		}
	}
	b.regs = append(b.regs, registration{first: first, last: last, peripheral: p})
	return nil
}

func (b *Bus) find(addr uint16) Peripheral {
	for _, r := range b.regs {
		if r.contains(addr) {
			return r.peripheral
		}
	}
	return nil
}

// Read8 dispatches a byte read to the owning peripheral, or returns
// UnmappedSentinel if no registrant claims addr.
func (b *Bus) Read8(addr uint16) byte {
	if p := b.find(addr); p != nil {
		return p.Read(addr)
	}
	b.Logf("bus: read from unmapped address 0x%04X", addr)
	return UnmappedSentinel
}

// Write8 dispatches a byte write to the owning peripheral, silently
// dropping writes to unmapped addresses.
func (b *Bus) Write8(addr uint16, value byte) {
	if p := b.find(addr); p != nil {
		p.Write(addr, value)
		return
	}
	b.Logf("bus: write to unmapped address 0x%04X dropped", addr)
}

// Read16 reads two consecutive bytes little-endian, wrapping 0xFFFF to
// 0x0000 (spec.md §4.1).
func (b *Bus) Read16(addr uint16) uint16 {
	low := b.Read8(addr)
	high := b.Read8(addr + 1)
	return uint16(high)<<8 | uint16(low)
}

// Write16 writes two consecutive bytes little-endian, in the same order
// Read16 reads them.
func (b *Bus) Write16(addr uint16, value uint16) {
	b.Write8(addr, byte(value))
	b.Write8(addr+1, byte(value>>8))
}
