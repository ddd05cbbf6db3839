package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/portfolio-lab/summit/parameter"
)

// Recorder captures the microphone through a system recorder process
// The process writes raw s16le mono PCM to stdout; a reader goroutine decodes it into chunks
type Recorder struct {
	sampleRate int
	detect     func(sampleRate int) (*BackendConfig, error)

	mu      sync.Mutex
	backend *BackendConfig
	cmd     *exec.Cmd
	chunks  chan []float64
	stop    chan struct{}
	done    chan struct{}
	exitErr error
	pending []float64

	running atomic.Bool
	closing atomic.Bool
}

// NewRecorder creates an unopened recorder at sampleRate
func NewRecorder(sampleRate int) *Recorder {
	if sampleRate <= 0 {
		sampleRate = parameter.CrySampleRate
	}
	return &Recorder{
		sampleRate: sampleRate,
		detect:     DetectCaptureBackend,
	}
}

// SampleRate returns the capture rate in Hz
func (r *Recorder) SampleRate() int {
	return r.sampleRate
}

// Backend returns the detected backend after Open, nil before
func (r *Recorder) Backend() *BackendConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend
}

// Open spawns the recorder and waits a short grace period for early failure
// A recorder that exits during the grace period (no device, permission denied) yields ErrCaptureFailed
func (r *Recorder) Open(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	backend, err := r.detect(r.sampleRate)
	if err != nil {
		r.running.Store(false)
		return fmt.Errorf("capture: %w", err)
	}

	cmd := exec.CommandContext(ctx, backend.Path, backend.Args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.running.Store(false)
		return fmt.Errorf("%w: %s: %v", ErrCaptureFailed, backend.Name, err)
	}
	if err := cmd.Start(); err != nil {
		r.running.Store(false)
		return fmt.Errorf("%w: %s: %v", ErrCaptureFailed, backend.Name, err)
	}

	r.mu.Lock()
	r.backend = backend
	r.cmd = cmd
	r.chunks = make(chan []float64, 64)
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.exitErr = nil
	r.pending = nil
	r.mu.Unlock()
	r.closing.Store(false)

	go r.pump(stdout)

	select {
	case <-r.done:
		r.running.Store(false)
		return fmt.Errorf("%w: %s exited: %v", ErrCaptureFailed, backend.Name, r.exitErr)
	case <-time.After(parameter.CaptureStartGrace):
	}

	log.Printf("capture: recording via %s at %d Hz", backend.Name, r.sampleRate)
	return nil
}

// pump decodes stdout until EOF, then reaps the process
// A read may end mid-sample; the odd byte is carried to the front of the next read
func (r *Recorder) pump(stdout io.Reader) {
	defer close(r.done)
	defer close(r.chunks)

	buf := make([]byte, parameter.CaptureChunkSamples*2)
	carry := 0
	for {
		n, err := io.ReadAtLeast(stdout, buf[carry:], 1)
		n += carry
		whole := n - n%2
		carry = n - whole
		if whole > 0 {
			samples := make([]float64, whole/2)
			DecodeS16LE(samples, buf[:whole])
			if carry > 0 {
				buf[0] = buf[whole]
			}
			select {
			case r.chunks <- samples:
			case <-r.stop:
				r.exitErr = r.cmd.Wait()
				return
			}
		}
		if err != nil {
			r.exitErr = r.cmd.Wait()
			return
		}
	}
}

// Read copies decoded samples into p, blocking for the next chunk when none are pending
func (r *Recorder) Read(p []float64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(r.pending) == 0 {
		chunk, ok := <-r.chunks
		if !ok {
			if r.closing.Load() {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("%w: recorder stopped: %v", ErrCaptureFailed, r.exitErr)
		}
		r.pending = chunk
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// Close kills the recorder and waits for the reader, safe to call repeatedly
func (r *Recorder) Close() error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}
	r.closing.Store(true)

	r.mu.Lock()
	cmd := r.cmd
	stop := r.stop
	done := r.done
	r.mu.Unlock()

	close(stop)
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	<-done
	log.Printf("capture: stopped")
	return nil
}

// DecodeS16LE converts little-endian signed 16-bit PCM into floats in [-1, 1), returns samples written
func DecodeS16LE(dst []float64, src []byte) int {
	n := len(src) / 2
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(src[2*i:]))
		dst[i] = float64(v) / 32768
	}
	return n
}
