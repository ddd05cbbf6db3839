package cry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/core"
	"github.com/portfolio-lab/summit/engine"
	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/status"
)

// ErrInsufficientSignal marks a window below the volume threshold, not a failure
var ErrInsufficientSignal = errors.New("signal below volume threshold")

// errSourceEnded stops the loops when a finite source is exhausted
var errSourceEnded = errors.New("source ended")

// Config tunes the analysis loops; zero fields take the defaults
type Config struct {
	Interval         time.Duration
	Threshold        float64
	WaveformInterval time.Duration
	HistorySize      int
}

// DefaultConfig returns a 3s classification cadence at volume 30
func DefaultConfig() Config {
	return Config{
		Interval:         parameter.CryInterval,
		Threshold:        parameter.CryVolumeThreshold,
		WaveformInterval: parameter.WaveformInterval,
		HistorySize:      parameter.CryHistorySize,
	}
}

// ResultStore persists classifications across runs
type ResultStore interface {
	AppendResult(r Result) error
	RecentResults(limit int) ([]Result, error)
}

// Analyzer pumps a source into an analyser and classifies the window periodically
// The capture pump, waveform redraw and classification pass share one errgroup
type Analyzer struct {
	cfg      Config
	source   audio.Source
	analyser *audio.Analyser
	store    ResultStore
	clock    engine.TimeProvider
	history  *History

	mu         sync.RWMutex
	current    *Result
	notice     string
	onWaveform func(audio.Frame)
	onResult   func(Result)

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	waitErr error

	statFrames     *atomic.Int64
	statClassified *atomic.Int64
	statSkipped    *atomic.Int64
	statVolume     *status.AtomicFloat
	statPeak       *status.AtomicFloat
	statConfidence *status.AtomicFloat
	statLast       *status.AtomicString
}

// NewAnalyzer wires a source to an analyser; reg may be nil
func NewAnalyzer(cfg Config, src audio.Source, an *audio.Analyser, reg *status.Registry) *Analyzer {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.WaveformInterval <= 0 {
		cfg.WaveformInterval = def.WaveformInterval
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	return &Analyzer{
		cfg:            cfg,
		source:         src,
		analyser:       an,
		clock:          engine.NewMonotonicTimeProvider(),
		history:        NewHistory(cfg.HistorySize),
		statFrames:     reg.Ints.Get("cry.frames"),
		statClassified: reg.Ints.Get("cry.classified"),
		statSkipped:    reg.Ints.Get("cry.skipped"),
		statVolume:     reg.Floats.Get("cry.volume"),
		statPeak:       reg.Floats.Get("cry.peak_volume"),
		statConfidence: reg.Floats.Get("cry.confidence"),
		statLast:       reg.Strings.Get("cry.last"),
	}
}

// SetStore attaches persistence, must be called before Start
func (a *Analyzer) SetStore(s ResultStore) {
	a.store = s
}

// SetClock overrides the timestamp source
func (a *Analyzer) SetClock(c engine.TimeProvider) {
	a.clock = c
}

// OnWaveform registers a redraw callback, invoked from the waveform loop
func (a *Analyzer) OnWaveform(fn func(audio.Frame)) {
	a.mu.Lock()
	a.onWaveform = fn
	a.mu.Unlock()
}

// OnResult registers a callback for each emitted classification
func (a *Analyzer) OnResult(fn func(Result)) {
	a.mu.Lock()
	a.onResult = fn
	a.mu.Unlock()
}

// Start opens the source and launches the loops
// On failure the analyzer stays idle and Notice describes the problem
func (a *Analyzer) Start(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return audio.ErrAlreadyRunning
	}

	a.restoreHistory()

	if err := a.source.Open(ctx); err != nil {
		a.running.Store(false)
		a.setNotice(noticeFor(err))
		return fmt.Errorf("cry: start: %w", err)
	}
	a.setNotice("")
	a.analyser.Reset()

	cctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(cctx)
	g.Go(core.Guard(func() error { return a.pump(gctx) }))
	g.Go(core.Guard(func() error { return a.classifyLoop(gctx) }))
	g.Go(core.Guard(func() error { return a.waveformLoop(gctx) }))

	a.cancel = cancel
	a.done = make(chan struct{})
	done := a.done
	core.Go(func() {
		err := g.Wait()
		if errors.Is(err, context.Canceled) || errors.Is(err, errSourceEnded) {
			err = nil
		}
		a.waitErr = err
		close(done)
	})
	return nil
}

// Stop cancels the loops, releases the source and waits, safe to call repeatedly
// No result is emitted after Stop returns
func (a *Analyzer) Stop() error {
	if !a.running.CompareAndSwap(true, false) {
		return nil
	}
	a.cancel()
	if err := a.source.Close(); err != nil {
		log.Printf("cry: source close: %v", err)
	}
	<-a.done
	return a.waitErr
}

// Done is closed when the loops exit, nil before the first Start
func (a *Analyzer) Done() <-chan struct{} {
	return a.done
}

// Running reports whether capture is active
func (a *Analyzer) Running() bool {
	return a.running.Load()
}

func (a *Analyzer) pump(ctx context.Context) error {
	buf := make([]float64, parameter.CaptureChunkSamples)
	for {
		n, err := a.source.Read(buf)
		if n > 0 {
			a.analyser.Write(buf[:n])
			a.statFrames.Add(1)
		}
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, io.EOF) {
			// Classify the tail before the loops wind down
			a.Analyze()
			a.setNotice("Source ended")
			return errSourceEnded
		}
		a.setNotice("Capture stopped: " + err.Error())
		return fmt.Errorf("cry: read: %w", err)
	}
}

func (a *Analyzer) classifyLoop(ctx context.Context) error {
	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := a.Analyze(); err != nil && !errors.Is(err, ErrInsufficientSignal) {
				return err
			}
		}
	}
}

func (a *Analyzer) waveformLoop(ctx context.Context) error {
	ticker := time.NewTicker(a.cfg.WaveformInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.mu.RLock()
			fn := a.onWaveform
			a.mu.RUnlock()
			if fn != nil {
				fn(a.analyser.Snapshot())
			}
		}
	}
}

// Analyze classifies the current window
func (a *Analyzer) Analyze() (Result, error) {
	return a.Evaluate(Extract(a.analyser.Snapshot()))
}

// Evaluate gates, classifies and records one feature set
// Returns ErrInsufficientSignal when volume is below the threshold; the threshold itself is analysed
func (a *Analyzer) Evaluate(f Features) (Result, error) {
	a.statVolume.Set(f.Volume)
	a.statPeak.SetMax(f.Volume)
	if f.Volume < a.cfg.Threshold {
		a.statSkipped.Add(1)
		return Result{}, ErrInsufficientSignal
	}

	c, score := Classify(f)
	r := Result{
		ID:          uuid.NewString(),
		Type:        c.Type,
		Icon:        c.Icon,
		Title:       c.Title,
		Description: c.Description,
		Confidence:  Confidence(score),
		Score:       score,
		Features:    f,
		Timestamp:   a.clock.Now(),
	}

	a.mu.Lock()
	a.current = &r
	fn := a.onResult
	a.mu.Unlock()
	a.history.Push(r)
	a.statClassified.Add(1)
	a.statConfidence.Set(r.Confidence)
	a.statLast.Store(r.Type)

	if a.store != nil {
		if err := a.store.AppendResult(r); err != nil {
			log.Printf("cry: result not saved: %v", err)
		}
	}
	if fn != nil {
		fn(r)
	}
	return r, nil
}

// Current returns the latest result, false before the first classification
func (a *Analyzer) Current() (Result, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return Result{}, false
	}
	return *a.current, true
}

// History returns up to HistorySize results, most recent first
func (a *Analyzer) History() []Result {
	return a.history.Items()
}

// Notice returns the user-facing status line, empty when healthy
func (a *Analyzer) Notice() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.notice
}

func (a *Analyzer) setNotice(s string) {
	a.mu.Lock()
	a.notice = s
	a.mu.Unlock()
}

func (a *Analyzer) restoreHistory() {
	if a.store == nil || a.history.Len() > 0 {
		return
	}
	rs, err := a.store.RecentResults(a.history.limit)
	if err != nil {
		log.Printf("cry: history not restored: %v", err)
		return
	}
	a.history.Restore(rs)
	if len(rs) > 0 {
		r := rs[0]
		a.mu.Lock()
		a.current = &r
		a.mu.Unlock()
	}
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, audio.ErrNoCaptureBackend):
		return "No recorder found. Install pulseaudio-utils, pipewire, alsa-utils, sox or ffmpeg."
	case errors.Is(err, audio.ErrFileSource):
		return "Audio file could not be restarted: " + err.Error()
	case errors.Is(err, audio.ErrCaptureFailed):
		return "Microphone unavailable or permission denied."
	default:
		return "Could not start audio: " + err.Error()
	}
}
