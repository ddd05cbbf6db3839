package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// StreamSource adapts a beep.Streamer into a mono Source
// With realtime pacing, Read blocks so samples are delivered no faster than the sample rate
// Close only stops delivery; a later Open rewinds when the source can, and Release frees the file
type StreamSource struct {
	streamer beep.Streamer
	rewind   func() (beep.Streamer, error)
	closer   io.Closer
	rate     beep.SampleRate
	realtime bool

	mu       sync.Mutex
	ctx      context.Context
	buf      [][2]float64
	start    time.Time
	consumed int
	opened   bool
	stopped  bool
	released bool
}

// NewStreamSource wraps s which plays at rate
func NewStreamSource(s beep.Streamer, rate beep.SampleRate, realtime bool) *StreamSource {
	return &StreamSource{
		streamer: s,
		rate:     rate,
		realtime: realtime,
		ctx:      context.Background(),
	}
}

// OpenWAV decodes a WAV file, resampling to targetRate when it differs
func OpenWAV(path string, targetRate int, realtime bool) (*StreamSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}

	from, to := format.SampleRate, format.SampleRate
	if targetRate > 0 && beep.SampleRate(targetRate) != from {
		to = beep.SampleRate(targetRate)
	}
	build := func() beep.Streamer {
		if to != from {
			return beep.Resample(4, from, to, streamer)
		}
		return streamer
	}

	src := NewStreamSource(build(), to, realtime)
	src.closer = streamer
	src.rewind = func() (beep.Streamer, error) {
		if err := streamer.Seek(0); err != nil {
			return nil, err
		}
		// The resampler buffers ahead, so it is rebuilt over the rewound decoder
		return build(), nil
	}
	return src, nil
}


// SampleRate returns the delivery rate in Hz
func (s *StreamSource) SampleRate() int {
	return int(s.rate)
}

// Open starts the pacing clock, rewinding to the start after the first Open when possible
// A streamer without a rewind resumes where it stopped
func (s *StreamSource) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return fmt.Errorf("%w: released", ErrFileSource)
	}
	if s.opened && s.rewind != nil {
		st, err := s.rewind()
		if err != nil {
			return fmt.Errorf("%w: rewind: %v", ErrFileSource, err)
		}
		s.streamer = st
	}
	s.opened = true
	s.stopped = false
	s.ctx = ctx
	s.start = time.Now()
	s.consumed = 0
	return nil
}

// Read downmixes the next len(p) frames to mono
func (s *StreamSource) Read(p []float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.released {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	if cap(s.buf) < len(p) {
		s.buf = make([][2]float64, len(p))
	}
	buf := s.buf[:len(p)]

	n, ok := s.streamer.Stream(buf)
	for i := 0; i < n; i++ {
		p[i] = (buf[i][0] + buf[i][1]) / 2
	}
	if n == 0 && !ok {
		if err := s.streamer.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	s.consumed += n
	if s.realtime {
		due := s.start.Add(s.rate.D(s.consumed))
		if wait := time.Until(due); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-s.ctx.Done():
				timer.Stop()
				return n, s.ctx.Err()
			}
		}
	}
	return n, nil
}

// Close stops delivery; Read returns io.EOF until the next Open
func (s *StreamSource) Close() error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	return nil
}

// Release closes the underlying decoder, safe to call repeatedly
// The source cannot be opened again afterwards
func (s *StreamSource) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
