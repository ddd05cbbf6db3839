package cry

import (
	"math"
	"testing"

	"github.com/portfolio-lab/summit/audio"
)

func filled(n int, b byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// TestVolume verifies RMS scaling of the centered waveform
func TestVolume(t *testing.T) {
	if v := Volume(filled(2048, 128)); v != 0 {
		t.Errorf("Expected silence at 0, got %f", v)
	}
	if v := Volume(filled(2048, 192)); math.Abs(v-50) > 1e-9 {
		t.Errorf("Expected 50 for constant half scale, got %f", v)
	}
	if v := Volume(nil); v != 0 {
		t.Errorf("Expected 0 for empty input, got %f", v)
	}
}

// TestIntensity verifies the mean of frequency bytes
func TestIntensity(t *testing.T) {
	if v := Intensity([]byte{10, 20, 30}); v != 20 {
		t.Errorf("Expected 20, got %f", v)
	}
}

// TestDominantFrequency verifies bin to Hz mapping and first-bin tie-break
func TestDominantFrequency(t *testing.T) {
	fd := make([]byte, 1024)
	fd[20] = 200
	fd[40] = 200
	want := 20 * 22050.0 / 1024
	if got := DominantFrequency(fd, 44100); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %.2f Hz, got %.2f", want, got)
	}
	if got := DominantFrequency(nil, 44100); got != 0 {
		t.Errorf("Expected 0 for empty spectrum, got %f", got)
	}
}

// TestVariability verifies only jumps strictly over the threshold count
func TestVariability(t *testing.T) {
	got := Variability([]byte{128, 140, 141, 120, 130})
	// deltas 12, 1, 21, 10
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("Expected 50%%, got %f", got)
	}
	if Variability([]byte{1}) != 0 {
		t.Error("Expected 0 for a single sample")
	}
}

// TestExtract verifies the frame fields feed the matching features
func TestExtract(t *testing.T) {
	f := Extract(audio.Frame{
		TimeDomain: filled(8, 192),
		Frequency:  []byte{0, 90, 30, 0},
		SampleRate: 8000,
	})
	if math.Abs(f.Volume-50) > 1e-9 || f.Intensity != 30 || f.Frequency != 1000 || f.Variability != 0 {
		t.Errorf("Expected (50, 30, 1000, 0), got %+v", f)
	}
}
