package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/portfolio-lab/summit/vmath"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			peak = math.Max(peak, math.Abs(buf[i][1]))
		}
		total += n
		if !ok || total > 10*44100 {
			return total, peak
		}
	}
}

// TestEffectsLengthAndRange verifies every effect ends on time and stays within [-1, 1]
func TestEffectsLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for s := Sound(0); s < soundCount; s++ {
		st := Effect(s, rate, vmath.NewFastRand(1))
		if st == nil {
			t.Fatalf("Expected streamer for %s", s)
		}
		total, peak := drain(st)

		want := rate.N(EffectDuration(s))
		// Sequenced notes round per note
		if total < want-3 || total > want+3 {
			t.Errorf("Expected %s to last %d samples, got %d", s, want, total)
		}
		if peak > 1 {
			t.Errorf("Expected %s peak within 1, got %f", s, peak)
		}
		if peak == 0 {
			t.Errorf("Expected %s to be audible", s)
		}
	}
}

// TestEffectUnknown verifies unknown sounds yield nil
func TestEffectUnknown(t *testing.T) {
	if Effect(soundCount, 44100, vmath.NewFastRand(1)) != nil {
		t.Error("Expected nil streamer for unknown sound")
	}
}

// TestShapeEnvelope verifies attack starts silent and the stream stops at the duration
func TestShapeEnvelope(t *testing.T) {
	rate := beep.SampleRate(1000)
	flat := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	s := shape(flat, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 200)
	n, ok := s.Stream(buf)
	if n != 100 || !ok {
		t.Fatalf("Expected 100 samples, got %d ok=%v", n, ok)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("Expected full sustain, got %f", buf[50][0])
	}
	if buf[99][0] >= 0.2 {
		t.Errorf("Expected release near zero, got %f", buf[99][0])
	}
	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Errorf("Expected exhausted stream, got %d ok=%v", n, ok)
	}
}

// TestGainSilent verifies zero gain mutes the stream
func TestGainSilent(t *testing.T) {
	s := gain(newSweep(440, 440, 10*time.Millisecond, 44100), 0)
	_, peak := drain(s)
	if peak != 0 {
		t.Errorf("Expected silence, got peak %f", peak)
	}
}
