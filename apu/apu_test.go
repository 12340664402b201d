package apu

import "testing"

// recordingSink captures the last value pushed through each method so
// tests can assert on it without a real audio backend.
type recordingSink struct {
	amplitude float64
	frequency float64
	waveform  int
	started   bool
	stopped   bool
}

func (s *recordingSink) SetAmplitude(v float64) { s.amplitude = v }
func (s *recordingSink) SetFrequency(hz float64) { s.frequency = hz }
func (s *recordingSink) SetWaveformIndex(i int)  { s.waveform = i }
func (s *recordingSink) Start()                  { s.started = true }
func (s *recordingSink) Stop()                   { s.stopped = true }

func newAPUWithSinks() (*APU, *recordingSink, *recordingSink) {
	s1, s2 := &recordingSink{}, &recordingSink{}
	return New(s1, s2), s1, s2
}

// TestWindowBounds resolves spec.md §9 Open Question (a): 48 bytes,
// 0xFF10..0xFF3F inclusive.
func TestWindowBounds(t *testing.T) {
	a := New(nil, nil)
	if a.FirstAddress() != 0xFF10 {
		t.Fatalf("FirstAddress = 0x%04X, want 0xFF10", a.FirstAddress())
	}
	if a.LastAddress() != 0xFF3F {
		t.Fatalf("LastAddress = 0x%04X, want 0xFF3F", a.LastAddress())
	}
}

// TestFrequencyRecomposition is scenario S5.
func TestFrequencyRecomposition(t *testing.T) {
	a, _, _ := newAPUWithSinks()
	a.Write(0xFF13, 0xFF)
	a.Write(0xFF14, 0x07)
	if a.Pulse1.Frequency != 0x7FF {
		t.Fatalf("frequency = 0x%04X, want 0x7FF", a.Pulse1.Frequency)
	}

	a.Write(0xFF14, 0x80)
	if !a.Pulse1.Enabled {
		t.Fatal("trigger bit should enable the channel")
	}
}

// TestFrequencyRecompositionOrderIndependence checks that writing FF14
// first, then FF13, still recomposes against both halves.
func TestFrequencyRecompositionOrderIndependence(t *testing.T) {
	a, _, _ := newAPUWithSinks()
	a.Write(0xFF14, 0x03)
	a.Write(0xFF13, 0xAB)
	if a.Pulse1.Frequency != 0x3AB {
		t.Fatalf("frequency = 0x%04X, want 0x3AB", a.Pulse1.Frequency)
	}
}

// TestTrigger is scenario S6.
func TestTrigger(t *testing.T) {
	a, _, _ := newAPUWithSinks()
	a.Pulse1.StartingVolume = 10
	a.Pulse1.LengthCounter = 0
	a.Pulse1.Trigger()

	if a.Pulse1.Volume != 10 {
		t.Fatalf("Volume = %d, want 10", a.Pulse1.Volume)
	}
	if a.Pulse1.LengthCounter != 64 {
		t.Fatalf("LengthCounter = %d, want 64", a.Pulse1.LengthCounter)
	}
	if !a.Pulse1.Enabled {
		t.Fatal("Enabled should be true after trigger")
	}
}

// TestFrameSequencerLengthAndEnvelope is scenario S7 and invariant 7.
func TestFrameSequencerLengthAndEnvelope(t *testing.T) {
	a, _, _ := newAPUWithSinks()
	a.Pulse1.LengthEnable = true
	a.Pulse1.LengthCounter = 3
	a.Pulse1.EnvelopePeriod = 1
	a.Pulse1.EnvelopeCount = 1
	a.Pulse1.EnvelopeAdd = true
	a.Pulse1.Volume = 5
	a.Pulse1.Enabled = true

	a.Clock256Hz() // tick 1
	if a.Pulse1.LengthCounter != 2 {
		t.Fatalf("after tick 1, LengthCounter = %d, want 2", a.Pulse1.LengthCounter)
	}
	if a.Pulse1.Volume != 5 {
		t.Fatal("envelope should not have ticked yet")
	}

	a.Clock256Hz() // tick 2
	if a.Pulse1.LengthCounter != 1 {
		t.Fatalf("after tick 2, LengthCounter = %d, want 1", a.Pulse1.LengthCounter)
	}

	a.Clock256Hz() // tick 3
	if a.Pulse1.LengthCounter != 0 {
		t.Fatalf("after tick 3, LengthCounter = %d, want 0", a.Pulse1.LengthCounter)
	}
	if a.Pulse1.Enabled {
		t.Fatal("Enabled should be false once length expires")
	}

	a.Clock256Hz() // tick 4: envelope fires (index == 3)
	if a.Pulse1.Volume != 6 {
		t.Fatalf("after tick 4, Volume = %d, want 6 (envelope fired)", a.Pulse1.Volume)
	}
}

// TestSweepOverflowDisablesChannel is invariant 8.
func TestSweepOverflowDisablesChannel(t *testing.T) {
	a, s1, _ := newAPUWithSinks()
	a.Pulse1.Enabled = true
	a.Pulse1.SweepPeriod = 1
	a.Pulse1.SweepShift = 1
	a.Pulse1.SweepNegate = false
	a.Pulse1.Frequency = 2000 // 2000 + (2000>>1) = 3000 > 2047

	before := s1.frequency
	a.Pulse1.sweepTick()

	if a.Pulse1.Enabled {
		t.Fatal("sweep overflow should disable the channel")
	}
	if s1.frequency != before {
		t.Fatal("no frequency update should reach the sink on overflow")
	}
}

// TestSweepDoubleOverflowCheck exercises the documented "performed twice"
// sweep behavior: an update whose first check is in range (so frequency
// is written) but whose *second* check against the same shift exceeds
// 2047 still disables the channel.
func TestSweepDoubleOverflowCheck(t *testing.T) {
	a, _, _ := newAPUWithSinks()
	a.Pulse1.Enabled = true
	a.Pulse1.SweepPeriod = 1
	a.Pulse1.SweepShift = 1
	a.Pulse1.SweepNegate = false
	// First check: 1024 + 512 = 1536 (in range, frequency updates).
	// Second check: 1536 + 768 = 2304 > 2047 -> disable.
	a.Pulse1.Frequency = 1024

	a.Pulse1.sweepTick()

	if a.Pulse1.Frequency != 1536 {
		t.Fatalf("Frequency = %d, want 1536 (first check's update should stick)", a.Pulse1.Frequency)
	}
	if a.Pulse1.Enabled {
		t.Fatal("second overflow check should have disabled the channel")
	}
}

// TestPulse2HasNoSweep ensures sweepTick is inert on pulse 2.
func TestPulse2HasNoSweep(t *testing.T) {
	a, _, _ := newAPUWithSinks()
	a.Pulse2.SweepPeriod = 1
	a.Pulse2.SweepShift = 1
	a.Pulse2.Frequency = 2000
	a.Pulse2.Enabled = true
	a.Pulse2.sweepTick()
	if !a.Pulse2.Enabled {
		t.Fatal("pulse 2 has no sweep hardware; it must never be disabled by sweepTick")
	}
}

// TestUnrecognizedAddressUpdatesShadowOnly covers the rest of the window.
func TestUnrecognizedAddressUpdatesShadowOnly(t *testing.T) {
	a := New(nil, nil)
	a.Write(0xFF30, 0xAB)
	if a.Read(0xFF30) != 0xAB {
		t.Fatal("shadow RAM should still record the write")
	}
}
