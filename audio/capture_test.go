package audio

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// TestDecodeS16LE verifies little-endian decoding and scaling
func TestDecodeS16LE(t *testing.T) {
	src := []byte{0x00, 0x00, 0xff, 0x7f, 0x00, 0x80, 0x00}
	dst := make([]float64, 4)
	n := DecodeS16LE(dst, src)

	if n != 3 {
		t.Fatalf("Expected 3 samples, got %d", n)
	}
	if dst[0] != 0 || dst[1] != 32767.0/32768 || dst[2] != -1 {
		t.Errorf("Expected [0, ~1, -1], got %v", dst[:3])
	}
}

// TestDetectCaptureBackendPriority verifies the recorder search order and the no-backend error
func TestDetectCaptureBackendPriority(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	available := map[string]bool{"arecord": true, "ffmpeg": true}
	lookPath = func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	b, err := DetectCaptureBackend(16000)
	if err != nil {
		t.Fatalf("Expected backend, got %v", err)
	}
	if b.Type != BackendALSA || b.Path != "/usr/bin/arecord" {
		t.Errorf("Expected arecord, got %s at %s", b.Name, b.Path)
	}
	var rate bool
	for _, a := range b.Args {
		if a == "16000" {
			rate = true
		}
	}
	if !rate {
		t.Errorf("Expected rate in args, got %v", b.Args)
	}

	available = map[string]bool{}
	if _, err := DetectCaptureBackend(16000); !errors.Is(err, ErrNoCaptureBackend) {
		t.Errorf("Expected ErrNoCaptureBackend, got %v", err)
	}
}

func shellRecorder(t *testing.T, script string) *Recorder {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	r := NewRecorder(8000)
	r.detect = func(int) (*BackendConfig, error) {
		return &BackendConfig{Name: "sh", Path: "/bin/sh", Args: []string{"-c", script}}, nil
	}
	return r
}

// TestRecorderEarlyExit verifies a recorder dying at startup reports ErrCaptureFailed
func TestRecorderEarlyExit(t *testing.T) {
	r := shellRecorder(t, "exit 3")
	err := r.Open(context.Background())
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("Expected ErrCaptureFailed, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Expected Close after failure to be a no-op, got %v", err)
	}
}

// TestRecorderReadAndClose verifies samples flow and Close is idempotent
func TestRecorderReadAndClose(t *testing.T) {
	r := shellRecorder(t, "head -c 4096 /dev/zero; exec sleep 10")
	if err := r.Open(context.Background()); err != nil {
		t.Fatalf("Expected open, got %v", err)
	}
	if err := r.Open(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}

	buf := make([]float64, 256)
	n, err := r.Read(buf)
	if err != nil || n == 0 {
		t.Fatalf("Expected samples, got n=%d err=%v", n, err)
	}
	for _, v := range buf[:n] {
		if v != 0 {
			t.Fatalf("Expected zero samples, got %f", v)
		}
	}

	done := make(chan struct{})
	go func() {
		r.Close()
		r.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
}

// TestStreamSourceEOF verifies a finite streamer ends with io.EOF and downmixes to mono
func TestStreamSourceEOF(t *testing.T) {
	tone, err := generators.SineTone(8000, 440)
	if err != nil {
		t.Fatal(err)
	}
	src := NewStreamSource(beep.Take(100, tone), 8000, false)
	if err := src.Open(context.Background()); err != nil {
		t.Fatal(err)
	}

	buf := make([]float64, 64)
	total := 0
	for {
		n, err := src.Read(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if total != 100 {
		t.Errorf("Expected 100 samples, got %d", total)
	}
	src.Close()
	if _, err := src.Read(buf); err != io.EOF {
		t.Errorf("Expected EOF after close, got %v", err)
	}
}

// TestStreamSourcePacing verifies realtime sources do not outrun the clock
func TestStreamSourcePacing(t *testing.T) {
	tone, _ := generators.SineTone(8000, 440)
	src := NewStreamSource(tone, 8000, true)
	src.Open(context.Background())

	start := time.Now()
	buf := make([]float64, 800)
	for i := 0; i < 2; i++ {
		src.Read(buf)
	}
	if el := time.Since(start); el < 150*time.Millisecond {
		t.Errorf("Expected at least 200ms of pacing, took %v", el)
	}

	ctx, cancel := context.WithCancel(context.Background())
	src.Open(ctx)
	cancel()
	src.consumed = 0
	src.start = time.Now().Add(time.Hour)
	if _, err := src.Read(buf); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected cancellation to interrupt pacing, got %v", err)
	}
}

// TestRecorderSplitSample verifies a sample split across two pipe writes decodes intact
func TestRecorderSplitSample(t *testing.T) {
	r := shellRecorder(t, `printf '\000\100\000'; sleep 0.3; printf '\100\000\100'; exec sleep 10`)
	if err := r.Open(context.Background()); err != nil {
		t.Fatalf("Expected open, got %v", err)
	}
	defer r.Close()

	var got []float64
	buf := make([]float64, 8)
	deadline := time.After(5 * time.Second)
	for len(got) < 3 {
		type result struct {
			n   int
			err error
		}
		ch := make(chan result, 1)
		go func() {
			n, err := r.Read(buf)
			ch <- result{n, err}
		}()
		select {
		case res := <-ch:
			if res.err != nil {
				t.Fatalf("Unexpected read error: %v", res.err)
			}
			got = append(got, buf[:res.n]...)
		case <-deadline:
			t.Fatalf("Expected 3 samples, got %v", got)
		}
	}

	if len(got) != 3 {
		t.Fatalf("Expected exactly 3 samples, got %v", got)
	}
	for i, v := range got {
		if v != 0.5 {
			t.Errorf("Expected sample %d to be 0.5, got %f", i, v)
		}
	}
}

// TestStreamSourceReopen verifies Close is not terminal and a WAV file restarts from the top
func TestStreamSourceReopen(t *testing.T) {
	tone, _ := generators.SineTone(8000, 440)
	live := NewStreamSource(tone, 8000, false)
	buf := make([]float64, 64)
	if err := live.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	live.Close()
	if _, err := live.Read(buf); err != io.EOF {
		t.Errorf("Expected EOF while stopped, got %v", err)
	}
	if err := live.Open(context.Background()); err != nil {
		t.Fatalf("Expected reopen, got %v", err)
	}
	if n, err := live.Read(buf); err != nil || n != len(buf) {
		t.Errorf("Expected samples after reopen, got n=%d err=%v", n, err)
	}

	path := filepath.Join(t.TempDir(), "ramp.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	pos := 0
	ramp := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		i := 0
		for ; i < len(samples) && pos < 100; i++ {
			v := float64(pos) / 200
			samples[i] = [2]float64{v, v}
			pos++
		}
		return i, i > 0
	})
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, ramp, format); err != nil {
		t.Fatal(err)
	}
	f.Close()

	src, err := OpenWAV(path, 8000, false)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Release()

	readAll := func() []float64 {
		t.Helper()
		if err := src.Open(context.Background()); err != nil {
			t.Fatalf("Expected open, got %v", err)
		}
		var out []float64
		for {
			n, err := src.Read(buf)
			out = append(out, buf[:n]...)
			if err == io.EOF {
				return out
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		}
	}

	first := readAll()
	src.Close()
	second := readAll()
	if len(first) != 100 || len(second) != 100 {
		t.Fatalf("Expected 100 samples per pass, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Expected identical passes, sample %d differs: %f vs %f", i, first[i], second[i])
		}
	}

	src.Release()
	if err := src.Open(context.Background()); !errors.Is(err, ErrFileSource) {
		t.Errorf("Expected ErrFileSource after release, got %v", err)
	}
}
