package main

import (
	"testing"

	"github.com/gopxl/beep/generators"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/status"
)

// TestPublishSource verifies labels and the backend gauge for file and microphone inputs
func TestPublishSource(t *testing.T) {
	reg := status.NewRegistry()

	tone, _ := generators.SineTone(8000, 440)
	file := audio.NewStreamSource(tone, 8000, false)
	if label := publishSource(reg, file, "/tmp/samples/cry.wav"); label != "cry.wav" {
		t.Errorf("Expected file base name, got %q", label)
	}
	if got := reg.Strings.Get("capture.backend").Load(); got != "file" {
		t.Errorf("Expected file backend, got %q", got)
	}

	mic := audio.NewRecorder(16000)
	if label := publishSource(reg, mic, "mic"); label != "microphone" {
		t.Errorf("Expected plain microphone label before open, got %q", label)
	}
	if got := reg.Strings.Get("capture.backend").Load(); got != "" {
		t.Errorf("Expected empty backend before open, got %q", got)
	}
}
