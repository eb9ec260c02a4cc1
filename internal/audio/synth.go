package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// sweep is an oscillator whose frequency glides linearly from start to end.
type sweep struct {
	start, end float64
	wave       WaveType
	rate       beep.SampleRate
	total      int
	pos        int
	phase      float64
	rng        *rand.Rand
}

// NewSweep creates a streamer of the given duration gliding from start to end Hz.
func NewSweep(start, end float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		start: start,
		end:   end,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
		rng:   rand.New(rand.NewPCG(uint64(start*1000+end), 0)),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			val = 1.0
			if s.phase >= 0.5 {
				val = -1.0
			}
		case WaveNoise:
			val = s.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(s.pos) / float64(s.total)
		freq := s.start + (s.end-s.start)*progress
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay fades a stream out linearly over its length after a short attack.
type decay struct {
	streamer beep.Streamer
	attack   int
	total    int
	pos      int
}

// NewDecay shapes s with a linear attack followed by a linear release to silence.
func NewDecay(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, attack: rate.N(attack), total: rate.N(d)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if d.pos >= d.total {
			return i, i > 0
		}
		vol := 1.0
		if d.pos < d.attack && d.attack > 0 {
			vol = float64(d.pos) / float64(d.attack)
		} else if release := d.total - d.attack; release > 0 {
			vol = float64(d.total-d.pos) / float64(release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume scales s by a linear gain in [0, 1].
// math.Log2(0) is -Inf, so zero gain is expressed as silence.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Build returns a fresh streamer for the effect.
func Build(e Effect, rate beep.SampleRate, gain float64) beep.Streamer {
	switch e {
	case Shoot:
		s := NewSweep(1200, 300, 90*time.Millisecond, WaveSquare, rate)
		return withVolume(NewDecay(s, 90*time.Millisecond, 5*time.Millisecond, rate), gain*0.2)
	case EnemyExplosion:
		s := NewSweep(0, 0, 250*time.Millisecond, WaveNoise, rate)
		return withVolume(NewDecay(s, 250*time.Millisecond, 5*time.Millisecond, rate), gain*0.5)
	case PlayerExplosion:
		noise := NewDecay(NewSweep(0, 0, 600*time.Millisecond, WaveNoise, rate), 600*time.Millisecond, 10*time.Millisecond, rate)
		rumble := NewDecay(NewSweep(110, 40, 600*time.Millisecond, WaveSine, rate), 600*time.Millisecond, 10*time.Millisecond, rate)
		return withVolume(beep.Mix(noise, rumble), gain*0.6)
	default:
		return beep.Silence(0)
	}
}
