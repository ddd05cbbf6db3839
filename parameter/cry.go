package parameter

import "time"

// Analyser, mirrors Web Audio AnalyserNode defaults
const (
	CrySampleRate = 44100
	// CryFFTSize is the analysis window length in samples
	CryFFTSize = 2048
	// CrySmoothing is the time constant blending successive magnitude spectra
	CrySmoothing   = 0.8
	CryMinDecibels = -100.0
	CryMaxDecibels = -30.0
)

// Classifier
const (
	// CryInterval is the period between classification passes
	CryInterval = 3 * time.Second
	// CryVolumeThreshold is the minimum volume (0-100) that gets classified, inclusive
	CryVolumeThreshold = 30.0
	// CryJitterThreshold is the raw byte delta counted as variability
	CryJitterThreshold = 10
	// CryPointsPerFeature is awarded for each feature inside a category range
	CryPointsPerFeature = 25
	CryConfidenceBase   = 90.0
	CryConfidenceSpan   = 8.0
	// CryHistorySize caps the rolling history
	CryHistorySize = 10
)

// Capture
const (
	// CaptureChunkSamples is the read size from the recorder pipe
	CaptureChunkSamples = 1024
	// CaptureStartGrace is how long a recorder must survive to count as started
	CaptureStartGrace = 150 * time.Millisecond
	// WaveformInterval is the redraw period of the live waveform
	WaveformInterval = 33 * time.Millisecond
)
