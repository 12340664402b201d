package apu

// PulseChannel is the state machine behind one square-wave channel
// (spec.md §3 "Pulse channel state", §4.6). HasSweep is true only for
// pulse 1; pulse 2 shares everything else but ignores sweep writes.
type PulseChannel struct {
	Sink Sink

	HasSweep bool

	Duty           byte
	LengthLoad     byte
	LengthCounter  byte
	StartingVolume byte
	EnvelopeAdd    bool
	EnvelopePeriod byte
	EnvelopeCount  byte
	Frequency      uint16
	LengthEnable   bool

	SweepPeriod byte
	SweepNegate bool
	SweepShift  byte

	Volume  byte
	Enabled bool
}

// NewPulseChannel constructs a channel wired to sink; sink may be nil, in
// which case updates are discarded.
func NewPulseChannel(hasSweep bool, sink Sink) *PulseChannel {
	if sink == nil {
		sink = NullSink{}
	}
	return &PulseChannel{HasSweep: hasSweep, Sink: sink}
}

// SetLength applies a write to the duty/length register: duty takes effect
// immediately, and the length counter reloads from the new load value —
// real hardware's documented behavior, though spec.md §4.5's table only
// names the two fields it decodes into.
func (p *PulseChannel) SetLength(duty, lengthLoad byte) {
	p.Duty = duty
	p.LengthLoad = lengthLoad
	p.LengthCounter = 64 - lengthLoad
	p.pushWaveform()
}

// SetEnvelope applies a write to the volume/envelope register.
func (p *PulseChannel) SetEnvelope(startingVolume byte, addMode bool, period byte) {
	p.StartingVolume = startingVolume
	p.EnvelopeAdd = addMode
	p.EnvelopePeriod = period
}

// SetSweep applies a write to the sweep register; only meaningful when
// HasSweep.
func (p *PulseChannel) SetSweep(period byte, negate bool, shift byte) {
	p.SweepPeriod = period
	p.SweepNegate = negate
	p.SweepShift = shift
}

// SetFrequency stores the 11-bit frequency (masking off higher bits) and
// pushes it to the sink, whether or not the channel is enabled.
func (p *PulseChannel) SetFrequency(freq uint16) {
	p.Frequency = freq & 0x07FF
	p.pushFrequency()
}

// Trigger implements spec.md §4.6's five-step trigger sequence.
func (p *PulseChannel) Trigger() {
	p.Enabled = true
	if p.LengthCounter == 0 {
		p.LengthCounter = 64
	}
	p.EnvelopeCount = p.EnvelopePeriod
	p.Volume = p.StartingVolume
	p.pushAmplitude()
	p.pushFrequency()
	p.pushWaveform()
	p.Sink.Start()
}

// lengthTick runs at 256 Hz: spec.md invariant 7.
func (p *PulseChannel) lengthTick() {
	if !p.LengthEnable || p.LengthCounter == 0 {
		return
	}
	p.LengthCounter--
	if p.LengthCounter == 0 {
		p.Enabled = false
		p.pushAmplitude()
	}
}

// sweepTick runs at 128 Hz on pulse 1 only. The overflow check after
// updating frequency is performed twice, against the same shift, per
// spec.md §4.6's explicit note — the second check never mutates
// Frequency, it only disables the channel if it too would overflow.
func (p *PulseChannel) sweepTick() {
	if !p.HasSweep || p.SweepPeriod == 0 || p.SweepShift == 0 {
		return
	}
	newFreq := p.sweepCompute(p.Frequency)
	if newFreq > 2047 {
		p.Enabled = false
		p.pushAmplitude()
		return
	}
	p.Frequency = newFreq
	p.pushFrequency()

	secondCheck := p.sweepCompute(newFreq)
	if secondCheck > 2047 {
		p.Enabled = false
		p.pushAmplitude()
	}
}

func (p *PulseChannel) sweepCompute(freq uint16) uint16 {
	delta := freq >> p.SweepShift
	if p.SweepNegate {
		if delta > freq {
			return 0
		}
		return freq - delta
	}
	return freq + delta
}

// envelopeTick runs at 64 Hz: spec.md §4.6's volume-adjustment rule.
func (p *PulseChannel) envelopeTick() {
	if p.EnvelopePeriod == 0 {
		return
	}
	if p.EnvelopeCount > 0 {
		p.EnvelopeCount--
	}
	if p.EnvelopeCount != 0 {
		return
	}
	p.EnvelopeCount = p.EnvelopePeriod
	if p.EnvelopeAdd {
		if p.Volume < 15 {
			p.Volume++
		}
	} else if p.Volume > 0 {
		p.Volume--
	}
	p.pushAmplitude()
}

func (p *PulseChannel) amplitude() float64 {
	if !p.Enabled {
		return 0
	}
	return float64(p.Volume) / 15.0
}

func (p *PulseChannel) pushAmplitude()  { p.Sink.SetAmplitude(p.amplitude()) }
func (p *PulseChannel) pushFrequency()  { p.Sink.SetFrequency(frequencyHz(p.Frequency)) }
func (p *PulseChannel) pushWaveform()   { p.Sink.SetWaveformIndex(int(p.Duty)) }
