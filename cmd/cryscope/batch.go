package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/cry"
	"github.com/portfolio-lab/summit/parameter"
)

// batchStats counts the outcome of a batch run
type batchStats struct {
	Windows    int
	Classified int
}

// runBatch reads src to the end without pacing and classifies once per interval of audio
// The analyzer's loops are not started; samples are written to an directly
func runBatch(ctx context.Context, src audio.Source, an *audio.Analyser, a *cry.Analyzer, interval time.Duration, w io.Writer) (batchStats, error) {
	var stats batchStats
	if err := src.Open(ctx); err != nil {
		return stats, err
	}
	defer src.Close()

	p := message.NewPrinter(language.English)
	rate := src.SampleRate()
	window := int(interval.Seconds() * float64(rate))
	if window < 1 {
		window = 1
	}

	buf := make([]float64, parameter.CaptureChunkSamples)
	consumed, sinceLast := 0, 0
	classify := func() {
		stats.Windows++
		r, err := a.Analyze()
		at := time.Duration(consumed) * time.Second / time.Duration(rate)
		if err != nil {
			p.Fprintf(w, "%8s  (quiet)\n", at.Truncate(time.Millisecond))
			return
		}
		stats.Classified++
		p.Fprintf(w, "%8s  %s %-15s %3.0f%%  vol %.1f  freq %.0fHz\n",
			at.Truncate(time.Millisecond), r.Icon, r.Title, r.Confidence, r.Features.Volume, r.Features.Frequency)
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		n, err := src.Read(buf)
		if n > 0 {
			an.Write(buf[:n])
			consumed += n
			sinceLast += n
			if sinceLast >= window {
				sinceLast = 0
				classify()
			}
		}
		if errors.Is(err, io.EOF) {
			if sinceLast > 0 {
				classify()
			}
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("read: %w", err)
		}
	}
}
