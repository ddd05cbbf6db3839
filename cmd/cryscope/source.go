package main

import (
	"path/filepath"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/status"
)

// sourceInfo names the input for the title bar and the capture.backend gauge
// A recorder reports its backend only after it has been opened
func sourceInfo(src audio.Source, path string) (label, backend string) {
	if rec, ok := src.(*audio.Recorder); ok {
		if b := rec.Backend(); b != nil {
			return "microphone (" + b.Name + ")", b.Name
		}
		return "microphone", ""
	}
	return filepath.Base(path), "file"
}

// publishSource refreshes the backend gauge and returns the title label
func publishSource(reg *status.Registry, src audio.Source, path string) string {
	label, backend := sourceInfo(src, path)
	reg.Strings.Get("capture.backend").Store(backend)
	return label
}
