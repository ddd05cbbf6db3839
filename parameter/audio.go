package parameter

import "time"

// Sound effect playback
const (
	SfxSampleRate = 44100
	// SfxBufferDuration is the speaker buffer, trades latency for underrun safety
	SfxBufferDuration = 100 * time.Millisecond
	SfxMasterVolume   = 0.5
)

// Jump chirp
const (
	JumpSoundDuration = 120 * time.Millisecond
	JumpSoundAttack   = 5 * time.Millisecond
	JumpSoundRelease  = 60 * time.Millisecond
)

// Grab click
const (
	GrabSoundDuration = 60 * time.Millisecond
	GrabSoundAttack   = 2 * time.Millisecond
	GrabSoundRelease  = 40 * time.Millisecond
)

// Perfect chime
const (
	PerfectSoundNote1Duration = 90 * time.Millisecond
	PerfectSoundNote2Duration = 220 * time.Millisecond
	PerfectSoundAttack        = 3 * time.Millisecond
	PerfectSoundNote1Release  = 40 * time.Millisecond
	PerfectSoundNote2Release  = 180 * time.Millisecond
)

// Crumble noise
const (
	CrumbleSoundDuration = 300 * time.Millisecond
	CrumbleSoundAttack   = 5 * time.Millisecond
	CrumbleSoundRelease  = 250 * time.Millisecond
)

// Hit thud
const (
	HitSoundDuration = 150 * time.Millisecond
	HitSoundAttack   = 2 * time.Millisecond
	HitSoundRelease  = 120 * time.Millisecond
)

// Game over descent
const (
	GameOverNoteDuration = 180 * time.Millisecond
	GameOverSoundAttack  = 5 * time.Millisecond
	GameOverSoundRelease = 80 * time.Millisecond
)
