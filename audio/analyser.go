package audio

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/portfolio-lab/summit/parameter"
)

// AnalyserConfig mirrors the tunables of a Web Audio AnalyserNode
type AnalyserConfig struct {
	SampleRate  int
	FFTSize     int
	Smoothing   float64
	MinDecibels float64
	MaxDecibels float64
}

// DefaultAnalyserConfig returns the AnalyserNode defaults at the capture rate
func DefaultAnalyserConfig() AnalyserConfig {
	return AnalyserConfig{
		SampleRate:  parameter.CrySampleRate,
		FFTSize:     parameter.CryFFTSize,
		Smoothing:   parameter.CrySmoothing,
		MinDecibels: parameter.CryMinDecibels,
		MaxDecibels: parameter.CryMaxDecibels,
	}
}

// Analyser keeps the most recent FFTSize samples and renders them as byte frames
// Write and Snapshot may be called from different goroutines
type Analyser struct {
	cfg AnalyserConfig

	mu       sync.Mutex
	ring     []float64
	pos      int
	smoothed []float64

	fft     *fourier.FFT
	scratch []float64
	coeffs  []complex128
}

// NewAnalyser creates an analyser; FFTSize must be a power of two, invalid sizes fall back to the default
func NewAnalyser(cfg AnalyserConfig) *Analyser {
	def := DefaultAnalyserConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.FFTSize < 32 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		cfg.FFTSize = def.FFTSize
	}
	if cfg.Smoothing < 0 || cfg.Smoothing >= 1 {
		cfg.Smoothing = def.Smoothing
	}
	if cfg.MaxDecibels <= cfg.MinDecibels {
		cfg.MinDecibels, cfg.MaxDecibels = def.MinDecibels, def.MaxDecibels
	}

	return &Analyser{
		cfg:      cfg,
		ring:     make([]float64, cfg.FFTSize),
		smoothed: make([]float64, cfg.FFTSize/2),
		fft:      fourier.NewFFT(cfg.FFTSize),
		scratch:  make([]float64, cfg.FFTSize),
	}
}

// Config returns the effective configuration
func (a *Analyser) Config() AnalyserConfig {
	return a.cfg
}

// BinCount is half the FFT size
func (a *Analyser) BinCount() int {
	return a.cfg.FFTSize / 2
}

// Write appends samples to the ring, overwriting the oldest
func (a *Analyser) Write(samples []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.ring)
	if len(samples) >= n {
		copy(a.ring, samples[len(samples)-n:])
		a.pos = 0
		return
	}
	for _, s := range samples {
		a.ring[a.pos] = s
		a.pos = (a.pos + 1) % n
	}
}

// Reset clears samples and spectral smoothing
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.ring)
	clear(a.smoothed)
	a.pos = 0
}

// Snapshot returns fresh time-domain and frequency byte buffers for the current window
// Each call advances the spectral smoothing by one step, as a getByteFrequencyData call does
func (a *Analyser) Snapshot() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.ring)
	// Oldest sample first
	copy(a.scratch, a.ring[a.pos:])
	copy(a.scratch[n-a.pos:], a.ring[:a.pos])

	frame := Frame{
		TimeDomain: make([]byte, n),
		Frequency:  make([]byte, n/2),
		SampleRate: a.cfg.SampleRate,
	}
	for i, s := range a.scratch {
		frame.TimeDomain[i] = clampByte(128 * (1 + s))
	}

	window.Blackman(a.scratch)
	a.coeffs = a.fft.Coefficients(a.coeffs, a.scratch)

	span := a.cfg.MaxDecibels - a.cfg.MinDecibels
	k := a.cfg.Smoothing
	for i := range a.smoothed {
		mag := cmplx.Abs(a.coeffs[i]) / float64(n)
		a.smoothed[i] = k*a.smoothed[i] + (1-k)*mag

		db := math.Inf(-1)
		if a.smoothed[i] > 0 {
			db = 20 * math.Log10(a.smoothed[i])
		}
		frame.Frequency[i] = clampByte(255 * (db - a.cfg.MinDecibels) / span)
	}

	return frame
}

func clampByte(v float64) byte {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return byte(v)
	}
}
