package audio

import (
	"context"
	"errors"
)

// Sound identifies a synthesized game effect
type Sound int

const (
	SoundJump Sound = iota
	SoundGrab
	SoundPerfect
	SoundCrumble
	SoundHit
	SoundGameOver
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundGrab:
		return "grab"
	case SoundPerfect:
		return "perfect"
	case SoundCrumble:
		return "crumble"
	case SoundHit:
		return "hit"
	case SoundGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// BackendType identifies the capture backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFmpeg
)

// BackendConfig describes a CLI recorder writing raw s16le mono to stdout
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Source delivers mono samples in [-1, 1]
// Read blocks until at least one sample is available and returns io.EOF once the stream ends
type Source interface {
	Open(ctx context.Context) error
	Read(p []float64) (int, error)
	Close() error
	SampleRate() int
}

// Frame is one analysis window in byte form, 128 is silence in TimeDomain
type Frame struct {
	TimeDomain []byte
	Frequency  []byte
	SampleRate int
}

// Sentinel errors
var (
	ErrNoCaptureBackend = errors.New("no compatible capture backend found")
	ErrCaptureFailed    = errors.New("audio capture failed")
	ErrAlreadyRunning   = errors.New("already running")
	ErrFileSource       = errors.New("audio file unavailable")
)
