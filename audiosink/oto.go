// Package audiosink adapts apu.Sink onto a real audio backend. It lives
// outside the core module tree (spec.md §1: the concrete synthesis
// backend is an external collaborator, not part of the state engine) and
// is the one place in the repository allowed to depend on an actual
// output device.
package audiosink

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/zotley-labs/duocore/apu"
)

// channelState is the snapshot OtoSink.Read consumes; swapped atomically
// so the audio callback never blocks on the control-path mutex (grounded
// on the teacher's OtoPlayer.chip atomic.Pointer pattern). It holds only
// control-path fields: phase belongs to the Read goroutine alone, so a
// concurrent SetAmplitude/SetFrequency swap can never reset or tear it.
type channelState struct {
	amplitude float64
	frequency float64
	duty      int
}

// OtoSink drives one pulse channel's output through an oto.Player. Two
// instances, one per pulse channel, are mixed by the host's mono
// output — matching spec.md §6's "a minimal capability set per channel".
type OtoSink struct {
	ctx    *oto.Context
	player *oto.Player

	sampleRate int
	state      atomic.Pointer[channelState]
	phase      float64 // owned exclusively by Read; never touched by swap

	mutex   sync.Mutex
	started bool
}

// NewOtoSink creates a player on ctx (which may be shared, see NewContext)
// and returns a sink ready to attach to one apu.PulseChannel, rendering at
// ctx's sample rate. ChannelCount is 1: each pulse
// channel gets its own mono stream: mixing, if the host wants it, happens
// downstream of this package.
func NewOtoSink(ctx *oto.Context) *OtoSink {
	s := &OtoSink{ctx: ctx, sampleRate: ctx.SampleRate()}
	s.state.Store(&channelState{})
	s.player = ctx.NewPlayer(s)
	return s
}

// Read synthesizes a square wave at the current amplitude, frequency and
// duty by sampling apu.DutyTable at an 8-step position derived from
// phase, matching the hardware waveform spec.md §4.2's sink contract
// reduces to an opaque index. phase is local to this method's caller
// goroutine (the oto mixer, which calls Read serially) so it is never
// raced against the atomically-swapped control-path state.
func (s *OtoSink) Read(p []byte) (int, error) {
	st := s.state.Load()
	samples := len(p) / 4
	for i := 0; i < samples; i++ {
		var v float32
		if st.frequency > 0 && st.amplitude > 0 {
			step := int(s.phase*8) % 8
			if apu.DutyTable[st.duty][step] {
				v = float32(st.amplitude)
			} else {
				v = float32(-st.amplitude)
			}
			s.phase += st.frequency / float64(s.sampleRate)
			if s.phase >= 1 {
				s.phase -= math.Floor(s.phase)
			}
		}
		putFloat32LE(p[i*4:i*4+4], v)
	}
	return len(p), nil
}

func putFloat32LE(dst []byte, v float32) {
	bits := math.Float32bits(v)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

func (s *OtoSink) SetAmplitude(v float64) {
	s.swap(func(c channelState) channelState { c.amplitude = v; return c })
}

func (s *OtoSink) SetFrequency(hz float64) {
	s.swap(func(c channelState) channelState { c.frequency = hz; return c })
}

// SetWaveformIndex selects which row of apu.DutyTable Read samples.
func (s *OtoSink) SetWaveformIndex(i int) {
	s.swap(func(c channelState) channelState { c.duty = i; return c })
}

func (s *OtoSink) swap(f func(channelState) channelState) {
	for {
		old := s.state.Load()
		next := f(*old)
		if s.state.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (s *OtoSink) Start() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.started {
		s.player.Play()
		s.started = true
	}
}

func (s *OtoSink) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.started {
		s.player.Pause()
		s.started = false
	}
}

// Close releases the underlying player. The context is owned by whoever
// constructed it and is shared across both pulse channels' sinks.
func (s *OtoSink) Close() {
	s.Stop()
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.player.Close()
}

// NewContext is a thin wrapper over oto.NewContext for the one-shot
// readiness handshake the host needs to perform once at startup.
func NewContext(sampleRate int) (*oto.Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return ctx, nil
}
