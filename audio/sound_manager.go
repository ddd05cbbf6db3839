package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/vmath"
)

// SoundManager plays one-shot effects through the system speaker
// Muted by default; Play is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	rng         vmath.Rand
	initialized bool

	muted  atomic.Bool
	played atomic.Int64
}

// NewSoundManager creates a muted, uninitialized manager
func NewSoundManager(rng vmath.Rand) *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
		rate:  beep.SampleRate(parameter.SfxSampleRate),
		rng:   rng,
	}
	sm.muted.Store(true)
	return sm
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(parameter.SfxBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// SetMuted enables or disables playback
func (sm *SoundManager) SetMuted(muted bool) {
	sm.muted.Store(muted)
}

// ToggleMute flips muting and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	for {
		cur := sm.muted.Load()
		if sm.muted.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// Muted reports whether playback is suppressed
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// Played returns the number of effects handed to the mixer
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}

// Play queues a sound effect, dropped when muted or not initialized
func (sm *SoundManager) Play(sound Sound) {
	if sm.muted.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := Effect(sound, sm.rate, sm.rng)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
}
