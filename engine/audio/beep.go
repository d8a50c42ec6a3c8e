package audio

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// voice describes one synthesized effect
type voice struct {
	freq     float64
	wave     WaveType
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

var voices = map[SoundID]voice{
	SndExplosion:  {freq: 0, wave: WaveNoise, duration: 600 * time.Millisecond, attack: 5 * time.Millisecond, release: 500 * time.Millisecond, gain: 0.8},
	SndMachineGun: {freq: 0, wave: WaveNoise, duration: 40 * time.Millisecond, attack: time.Millisecond, release: 30 * time.Millisecond, gain: 0.25},
	SndLaser:      {freq: 1200, wave: WaveSaw, duration: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.3},
	SndClaws:      {freq: 220, wave: WaveSquare, duration: 60 * time.Millisecond, attack: 2 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.2},
	SndError:      {freq: 100, wave: WaveSaw, duration: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, gain: 0.4},
}

// BeepSink synthesizes effects and mixes them onto the speaker
type BeepSink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewBeepSink() *BeepSink {
	return &BeepSink{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. Callers fall back to Silent on error.
func (s *BeepSink) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play queues one effect on the mixer
func (s *BeepSink) Play(id SoundID, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	v, ok := voices[id]
	if !ok {
		return
	}
	streamer := synth(v, volume)
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Cleanup silences everything still playing
func (s *BeepSink) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

func synth(v voice, volume float64) beep.Streamer {
	osc := newOscillator(v.freq, v.duration, v.wave, sampleRate)
	shaped := newEnvelope(osc, v.duration, v.attack, v.release, sampleRate)
	return newVolume(shaped, v.gain*volume)
}

// newVolume wraps s in a volume effect; math.Log2(0) is -Inf so zero
// volume is expressed as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
