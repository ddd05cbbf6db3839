package cry

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/parameter"
)

// Features are the four per-window measurements scored against category ranges
type Features struct {
	Volume      float64 // RMS of the centered waveform, 0-100
	Intensity   float64 // mean frequency byte, 0-255
	Frequency   float64 // dominant bin in Hz
	Variability float64 // percent of adjacent samples jumping more than the jitter threshold
}

// Extract computes features from one analysis frame
func Extract(f audio.Frame) Features {
	return Features{
		Volume:      Volume(f.TimeDomain),
		Intensity:   Intensity(f.Frequency),
		Frequency:   DominantFrequency(f.Frequency, f.SampleRate),
		Variability: Variability(f.TimeDomain),
	}
}

// Volume is RMS of (b-128)/128 scaled to 0-100
func Volume(td []byte) float64 {
	if len(td) == 0 {
		return 0
	}
	centered := make([]float64, len(td))
	for i, b := range td {
		centered[i] = (float64(b) - 128) / 128
	}
	return floats.Norm(centered, 2) / math.Sqrt(float64(len(td))) * 100
}

// Intensity is the mean of the frequency bytes
func Intensity(fd []byte) float64 {
	if len(fd) == 0 {
		return 0
	}
	return floats.Sum(toFloats(fd)) / float64(len(fd))
}

// DominantFrequency maps the loudest bin to Hz, the first bin wins ties
func DominantFrequency(fd []byte, sampleRate int) float64 {
	if len(fd) == 0 {
		return 0
	}
	idx := floats.MaxIdx(toFloats(fd))
	return float64(idx) * (float64(sampleRate) / 2) / float64(len(fd))
}

// Variability is the percentage of adjacent time-domain pairs differing by more than the jitter threshold
func Variability(td []byte) float64 {
	if len(td) < 2 {
		return 0
	}
	jumps := 0
	for i := 1; i < len(td); i++ {
		d := int(td[i]) - int(td[i-1])
		if d > parameter.CryJitterThreshold || d < -parameter.CryJitterThreshold {
			jumps++
		}
	}
	return float64(jumps) / float64(len(td)-1) * 100
}

func toFloats(b []byte) []float64 {
	out := make([]float64, len(b))
	for i, v := range b {
		out[i] = float64(v)
	}
	return out
}
