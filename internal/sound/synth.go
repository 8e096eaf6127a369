package sound

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// tone is a single oscillator with an optional linear frequency sweep.
type tone struct {
	from, to float64 // Hz at start and end
	wave     Wave
	phase    float64
	pos      int
	length   int
	rng      *rand.Rand
}

func newTone(from, to float64, d time.Duration, wave Wave, rng *rand.Rand) *tone {
	return &tone{from: from, to: to, wave: wave, length: sampleRate.N(d), rng: rng}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.length {
			return i, i > 0
		}
		progress := float64(t.pos) / float64(t.length)

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = -1
			if t.phase < 0.5 {
				v = 1
			}
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}
		// Linear decay so effects never click off.
		v *= 1 - progress
		samples[i][0] = v
		samples[i][1] = v

		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Synth plays procedurally generated effects through the system speaker.
// It is only used by the local terminal binary; the speaker is a process
// global.
type Synth struct {
	mixer  *beep.Mixer
	rng    *rand.Rand
	volume float64
}

// NewSynth initializes the speaker. The returned error means no audio
// device is available; callers fall back to Nop.
func NewSynth(vol float64) (*Synth, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Synth{
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		volume: vol,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Close silences every queued effect.
func (s *Synth) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

func (s *Synth) play(streamers ...beep.Streamer) {
	st := volume(beep.Seq(streamers...), s.volume)
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Synth) Boom() {
	s.play(newTone(0, 0, 400*time.Millisecond, WaveNoise, s.rng))
}

func (s *Synth) InertBoom() {
	s.play(volume(newTone(0, 0, 150*time.Millisecond, WaveNoise, s.rng), 0.4))
}

func (s *Synth) Fire() {
	s.play(newTone(1200, 300, 120*time.Millisecond, WaveSquare, s.rng))
}

func (s *Synth) ShieldUp() {
	s.play(newTone(200, 600, 250*time.Millisecond, WaveSine, s.rng))
}

func (s *Synth) ShieldDown() {
	s.play(newTone(600, 200, 250*time.Millisecond, WaveSine, s.rng))
}

func (s *Synth) Regenerate() {
	s.play(
		newTone(523.25, 523.25, 100*time.Millisecond, WaveSine, s.rng),
		newTone(783.99, 783.99, 150*time.Millisecond, WaveSine, s.rng),
	)
}

func (s *Synth) LevelUp() {
	s.play(
		newTone(440, 440, 100*time.Millisecond, WaveSquare, s.rng),
		newTone(554.37, 554.37, 100*time.Millisecond, WaveSquare, s.rng),
		newTone(659.25, 659.25, 200*time.Millisecond, WaveSquare, s.rng),
	)
}
