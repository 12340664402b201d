// Package apu implements the Game Boy-style audio processing unit:
// the 0xFF10-0xFF3F register window, the two pulse channels it drives,
// and the 256 Hz frame sequencer that derives their 128/64 Hz sub-clocks
// (spec.md §3, §4.5, §4.6).
package apu

// Base and WindowSize fix the register window at 0xFF10..0xFF3F inclusive
// (48 bytes) — spec.md §9 Open Question (a), resolved against the
// inclusive range rather than the source's off-by-one-prone literal.
const (
	Base       uint16 = 0xFF10
	WindowSize        = 48
)

// Register offsets within the window, relative to Base.
const (
	regNR10 = 0x00 // pulse1 sweep
	regNR11 = 0x01 // pulse1 duty/length
	regNR12 = 0x02 // pulse1 volume/envelope
	regNR13 = 0x03 // pulse1 frequency low
	regNR14 = 0x04 // pulse1 frequency high/trigger/length-enable
	regNR21 = 0x06 // pulse2 duty/length
	regNR22 = 0x07 // pulse2 volume/envelope
	regNR23 = 0x08 // pulse2 frequency low
	regNR24 = 0x09 // pulse2 frequency high/trigger/length-enable
)

// APU is a bus.Peripheral (structurally, without importing package bus) at
// [Base, Base+WindowSize-1]. Every write updates shadow RAM and, for the
// recognized pulse-channel registers, recomputes channel parameters
// side-effectfully (spec.md §4.5).
type APU struct {
	shadow [WindowSize]byte

	Pulse1 *PulseChannel
	Pulse2 *PulseChannel

	seqIndex byte
}

// New constructs an APU with both pulse channels wired to their sinks.
// Pass nil for either sink to run that channel headless.
func New(pulse1Sink, pulse2Sink Sink) *APU {
	return &APU{
		Pulse1: NewPulseChannel(true, pulse1Sink),
		Pulse2: NewPulseChannel(false, pulse2Sink),
	}
}

func (a *APU) FirstAddress() uint16 { return Base }
func (a *APU) LastAddress() uint16  { return Base + WindowSize - 1 }

// Read returns the shadow byte for addr; the window has no registers with
// write-only or computed-on-read semantics.
func (a *APU) Read(addr uint16) byte {
	return a.shadow[addr-Base]
}

// Write stores to shadow RAM and dispatches by address (spec.md §4.5's
// table). Writes to addresses inside the window but outside the pulse
// register set update shadow RAM only.
func (a *APU) Write(addr uint16, value byte) {
	off := addr - Base
	a.shadow[off] = value

	switch off {
	case regNR10:
		a.Pulse1.SetSweep((value>>4)&0x07, value&0x08 != 0, value&0x07)
	case regNR11:
		a.Pulse1.SetLength(value>>6, value&0x3F)
	case regNR12:
		a.Pulse1.SetEnvelope(value>>4, value&0x08 != 0, value&0x07)
	case regNR13:
		a.Pulse1.SetFrequency(a.composeFrequency(value, a.shadow[regNR14]))
	case regNR14:
		a.Pulse1.SetFrequency(a.composeFrequency(a.shadow[regNR13], value))
		a.Pulse1.LengthEnable = value&0x40 != 0
		if value&0x80 != 0 {
			a.Pulse1.Trigger()
		}
	case regNR21:
		a.Pulse2.SetLength(value>>6, value&0x3F)
	case regNR22:
		a.Pulse2.SetEnvelope(value>>4, value&0x08 != 0, value&0x07)
	case regNR23:
		a.Pulse2.SetFrequency(a.composeFrequency(value, a.shadow[regNR24]))
	case regNR24:
		a.Pulse2.SetFrequency(a.composeFrequency(a.shadow[regNR23], value))
		a.Pulse2.LengthEnable = value&0x40 != 0
		if value&0x80 != 0 {
			a.Pulse2.Trigger()
		}
	}
}

// composeFrequency rebuilds the 11-bit period from its low byte (the
// FFx3 register) and the low 3 bits of its high byte (the FFx4 register),
// regardless of which of the pair was just written (spec.md §4.5: "the
// write dispatcher must recompose frequency from both constituent
// registers").
func (a *APU) composeFrequency(low, high byte) uint16 {
	return uint16(high&0x07)<<8 | uint16(low)
}

// Clock256Hz advances the frame sequencer by one 256 Hz tick: length every
// tick, sweep at index 1 and 3 (128 Hz), envelope at index 3 (64 Hz) —
// spec.md §4.6.
func (a *APU) Clock256Hz() {
	a.Pulse1.lengthTick()
	a.Pulse2.lengthTick()

	if a.seqIndex == 1 || a.seqIndex == 3 {
		a.Pulse1.sweepTick()
	}
	if a.seqIndex == 3 {
		a.Pulse1.envelopeTick()
		a.Pulse2.envelopeTick()
	}

	a.seqIndex = (a.seqIndex + 1) % 4
}
