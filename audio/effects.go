package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/vmath"
)

// sweep is a sine whose frequency glides linearly from -> to over its duration
type sweep struct {
	from, to float64
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
}

func newSweep(from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, rate: rate, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*t
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i] = [2]float64{v, v}
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise is white noise from an injected generator
type noise struct {
	rng vmath.Rand
}

func (n noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := n.rng.Float64()*2 - 1
		samples[i] = [2]float64{v, v}
	}
	return len(samples), true
}

func (noise) Err() error { return nil }

// shape applies a linear attack and release over exactly d of the wrapped stream
func shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	att := rate.N(attack)
	rel := rate.N(release)
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		if remain := total - pos; len(samples) > remain {
			samples = samples[:remain]
		}
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			g := 1.0
			if pos < att {
				g = float64(pos) / float64(att)
			}
			if left := total - pos; left < rel {
				g = math.Min(g, float64(left)/float64(rel))
			}
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok || n > 0
	})
}

// gain wraps s in an effects.Volume with a linear factor, 0 is silent
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// tone builds a shaped generator tone, falling back to silence when the generator rejects the frequency
func tone(gen func(beep.SampleRate, float64) (beep.Streamer, error), freq float64, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	s, err := gen(rate, freq)
	if err != nil {
		s = generators.Silence(-1)
	}
	return shape(s, d, attack, release, rate)
}

// Effect synthesizes a one-shot streamer for sound at rate
func Effect(sound Sound, rate beep.SampleRate, rng vmath.Rand) beep.Streamer {
	var s beep.Streamer

	switch sound {
	case SoundJump:
		// Rising chirp
		s = shape(newSweep(320, 760, parameter.JumpSoundDuration, rate),
			parameter.JumpSoundDuration, parameter.JumpSoundAttack, parameter.JumpSoundRelease, rate)

	case SoundGrab:
		s = gain(tone(generators.SquareTone, 220, parameter.GrabSoundDuration,
			parameter.GrabSoundAttack, parameter.GrabSoundRelease, rate), 0.6)

	case SoundPerfect:
		// A5 then E6
		n1 := tone(generators.SineTone, 880, parameter.PerfectSoundNote1Duration,
			parameter.PerfectSoundAttack, parameter.PerfectSoundNote1Release, rate)
		n2 := tone(generators.SineTone, 1318.51, parameter.PerfectSoundNote2Duration,
			parameter.PerfectSoundAttack, parameter.PerfectSoundNote2Release, rate)
		s = beep.Seq(n1, n2)

	case SoundCrumble:
		s = gain(shape(noise{rng: rng}, parameter.CrumbleSoundDuration,
			parameter.CrumbleSoundAttack, parameter.CrumbleSoundRelease, rate), 0.5)

	case SoundHit:
		thud := tone(generators.TriangleTone, 90, parameter.HitSoundDuration,
			parameter.HitSoundAttack, parameter.HitSoundRelease, rate)
		crack := shape(noise{rng: rng}, parameter.HitSoundDuration,
			parameter.HitSoundAttack, parameter.HitSoundRelease/2, rate)
		s = beep.Mix(gain(thud, 0.8), gain(crack, 0.3))

	case SoundGameOver:
		// Descending A4, E4, A3
		notes := make([]beep.Streamer, 0, 3)
		for _, f := range []float64{440, 329.63, 220} {
			notes = append(notes, tone(generators.SawtoothTone, f, parameter.GameOverNoteDuration,
				parameter.GameOverSoundAttack, parameter.GameOverSoundRelease, rate))
		}
		s = gain(beep.Seq(notes...), 0.5)

	default:
		return nil
	}

	return gain(s, parameter.SfxMasterVolume)
}

// EffectDuration returns the total length of a sound
func EffectDuration(sound Sound) time.Duration {
	switch sound {
	case SoundJump:
		return parameter.JumpSoundDuration
	case SoundGrab:
		return parameter.GrabSoundDuration
	case SoundPerfect:
		return parameter.PerfectSoundNote1Duration + parameter.PerfectSoundNote2Duration
	case SoundCrumble:
		return parameter.CrumbleSoundDuration
	case SoundHit:
		return parameter.HitSoundDuration
	case SoundGameOver:
		return 3 * parameter.GameOverNoteDuration
	default:
		return 0
	}
}
