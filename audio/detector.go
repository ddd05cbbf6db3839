// @focus: #sys { audio }
package audio

import (
	"os/exec"
	"strconv"
)

// lookPath is swapped in tests
var lookPath = exec.LookPath

// DetectCaptureBackend searches for an available recorder
// Priority: parec > pw-record > arecord > rec (sox) > ffmpeg
func DetectCaptureBackend(sampleRate int) (*BackendConfig, error) {
	rate := strconv.Itoa(sampleRate)

	// PulseAudio, also served by pipewire-pulse
	if path, err := lookPath("parec"); err == nil {
		return &BackendConfig{
			Type: BackendPulse,
			Name: "parec",
			Path: path,
			Args: []string{
				"--raw",
				"--format=s16le",
				"--rate=" + rate,
				"--channels=1",
				"--latency-msec=20",
			},
		}, nil
	}

	// PipeWire native
	if path, err := lookPath("pw-record"); err == nil {
		return &BackendConfig{
			Type: BackendPipeWire,
			Name: "pw-record",
			Path: path,
			Args: []string{
				"--format=s16",
				"--rate=" + rate,
				"--channels=1",
				"-",
			},
		}, nil
	}

	// ALSA
	if path, err := lookPath("arecord"); err == nil {
		return &BackendConfig{
			Type: BackendALSA,
			Name: "arecord",
			Path: path,
			Args: []string{
				"-t", "raw",
				"-f", "S16_LE",
				"-r", rate,
				"-c", "1",
				"-q",
			},
		}, nil
	}

	// SoX
	if path, err := lookPath("rec"); err == nil {
		return &BackendConfig{
			Type: BackendSoX,
			Name: "sox",
			Path: path,
			Args: []string{
				"-q",
				"-t", "raw",
				"-e", "signed",
				"-b", "16",
				"-c", "1",
				"-r", rate,
				"-",
			},
		}, nil
	}

	// FFmpeg on the default pulse source
	if path, err := lookPath("ffmpeg"); err == nil {
		return &BackendConfig{
			Type: BackendFFmpeg,
			Name: "ffmpeg",
			Path: path,
			Args: []string{
				"-loglevel", "quiet",
				"-f", "pulse",
				"-i", "default",
				"-ac", "1",
				"-ar", rate,
				"-f", "s16le",
				"pipe:1",
			},
		}, nil
	}

	return nil, ErrNoCaptureBackend
}
