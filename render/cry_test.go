package render

import (
	"strings"
	"testing"
	"time"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/cry"
)

// TestCryViewWaiting verifies the placeholder and key hints before any result
func TestCryViewWaiting(t *testing.T) {
	s := newSimScreen(t, 80, 30)
	v := NewCryView(s)
	v.Draw(CryScene{Source: "mic", Threshold: 30})

	text := screenText(s)
	if !strings.Contains(text, "Waiting for a cry") {
		t.Error("Expected waiting placeholder")
	}
	if !strings.Contains(rowText(s, 0), "idle") {
		t.Errorf("Expected idle state in title, got %q", rowText(s, 0))
	}
	if !strings.Contains(rowText(s, 29), "Space start/stop") {
		t.Errorf("Expected key hints on last row, got %q", rowText(s, 29))
	}
}

// TestCryViewResult verifies the current result, history and notice are drawn
func TestCryViewResult(t *testing.T) {
	s := newSimScreen(t, 80, 30)
	v := NewCryView(s)

	td := make([]byte, 256)
	for i := range td {
		td[i] = 128
		if i%2 == 0 {
			td[i] = 250
		}
	}
	r := cry.Result{
		Icon:        "🍼",
		Title:       "Hungry",
		Description: "Try a feed.",
		Confidence:  98,
		Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local),
	}
	v.Draw(CryScene{
		Source:    "mic",
		Running:   true,
		Threshold: 30,
		Frame:     audio.Frame{TimeDomain: td, SampleRate: 44100},
		Current:   &r,
		History:   []cry.Result{r},
		Notice:    "Source ended",
	})

	text := screenText(s)
	for _, want := range []string{"listening", "Hungry", "98% confidence", "Try a feed.", "03:04:05", "Source ended", "Volume"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q on screen", want)
		}
	}
}

// TestCryViewFormatAndMetrics verifies the analyser format in the title and debug metrics above the hints
func TestCryViewFormatAndMetrics(t *testing.T) {
	s := newSimScreen(t, 100, 30)
	v := NewCryView(s)
	v.Draw(CryScene{
		Source:    "microphone (parec)",
		Threshold: 30,
		Format:    audio.AnalyserConfig{SampleRate: 44100, FFTSize: 2048},
		Metrics:   []string{"capture.backend=parec cry.volume=41.0"},
	})

	if title := rowText(s, 0); !strings.Contains(title, "44,100 Hz  FFT 2,048") {
		t.Errorf("Expected analyser format in title, got %q", title)
	}
	if row := rowText(s, 28); !strings.Contains(row, "capture.backend=parec") {
		t.Errorf("Expected metrics above key hints, got %q", row)
	}
	if !strings.Contains(rowText(s, 29), "Space start/stop") {
		t.Errorf("Expected key hints kept on last row, got %q", rowText(s, 29))
	}
}
