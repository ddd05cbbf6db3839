package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/config"
	"github.com/portfolio-lab/summit/core"
	"github.com/portfolio-lab/summit/cry"
	"github.com/portfolio-lab/summit/input"
	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/render"
	"github.com/portfolio-lab/summit/status"
	"github.com/portfolio-lab/summit/storage"
)

func main() {
	configPath := flag.String("config", "", "Config file (.toml, .yaml, .yml)")
	source := flag.String("source", "", "\"mic\" or a WAV file path")
	threshold := flag.Float64("threshold", 0, "Minimum volume (1-100) to classify, 0 keeps the default")
	interval := flag.Duration("interval", 0, "Classification period")
	dataDir := flag.String("data", "", "Directory holding the result database")
	debug := flag.Bool("debug", false, "Log to logs/cryscope.log and show metrics")
	batch := flag.Bool("batch", false, "Classify a WAV file without the UI and print results")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cryscope: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Cry.Source = *source
		case "threshold":
			cfg.Cry.Threshold = *threshold
		case "interval":
			cfg.Cry.IntervalMS = int(*interval / time.Millisecond)
		case "data":
			cfg.Storage.DataDir = *dataDir
		case "debug":
			cfg.Log.Debug = *debug
		}
	})

	if logFile := core.SetupLogging("cryscope", cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	an := audio.NewAnalyser(audio.AnalyserConfig{
		SampleRate:  cfg.Cry.SampleRate,
		FFTSize:     cfg.Cry.FFTSize,
		Smoothing:   parameter.CrySmoothing,
		MinDecibels: parameter.CryMinDecibels,
		MaxDecibels: parameter.CryMaxDecibels,
	})

	ccfg := cry.DefaultConfig()
	ccfg.Interval = cfg.CryInterval()
	if cfg.Cry.Threshold > 0 {
		ccfg.Threshold = cfg.Cry.Threshold
	}

	if *batch {
		if cfg.Cry.Source == config.SourceMic {
			fmt.Fprintln(os.Stderr, "cryscope: -batch needs a WAV file source")
			os.Exit(2)
		}
		src, err := audio.OpenWAV(cfg.Cry.Source, cfg.Cry.SampleRate, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cryscope: %v\n", err)
			os.Exit(1)
		}
		a := cry.NewAnalyzer(ccfg, src, an, nil)
		stats, err := runBatch(context.Background(), src, an, a, ccfg.Interval, os.Stdout)
		src.Release()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cryscope: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d windows, %d classified\n", stats.Windows, stats.Classified)
		return
	}

	var src audio.Source
	if cfg.Cry.Source == config.SourceMic {
		src = audio.NewRecorder(cfg.Cry.SampleRate)
	} else {
		wav, err := audio.OpenWAV(cfg.Cry.Source, cfg.Cry.SampleRate, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cryscope: %v\n", err)
			os.Exit(1)
		}
		defer wav.Release()
		src = wav
	}

	reg := status.NewRegistry()
	analyzer := cry.NewAnalyzer(ccfg, src, an, reg)
	if store, err := storage.OpenOrMemory(cfg.Storage.DataDir); err != nil {
		log.Printf("cryscope: results not persisted: %v", err)
	} else {
		defer store.Close()
		analyzer.SetStore(store)
	}

	var latest atomic.Pointer[audio.Frame]
	analyzer.OnWaveform(func(f audio.Frame) { latest.Store(&f) })
	analyzer.OnResult(func(r cry.Result) {
		log.Printf("cryscope: %s %.0f%% vol=%.1f freq=%.0f", r.Type, r.Confidence, r.Features.Volume, r.Features.Frequency)
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cryscope: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "cryscope: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	core.SetCrashTerminal(screen)
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer analyzer.Stop()

	view := render.NewCryView(screen)
	machine := input.NewMachine(nil)

	eventChan := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(parameter.WaveformInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			intent := machine.Process(ev)
			if intent == nil {
				continue
			}
			switch intent.Type {
			case input.IntentQuit:
				return
			case input.IntentResize:
				screen.Sync()
			case input.IntentPrimary:
				toggle(ctx, analyzer)
			}

		case <-frameTicker.C:
			// A finished file leaves the loops done but the analyzer still marked running
			if done := analyzer.Done(); done != nil && analyzer.Running() {
				select {
				case <-done:
					if err := analyzer.Stop(); err != nil {
						log.Printf("cryscope: %v", err)
					}
				default:
				}
			}

			scene := render.CryScene{
				Source:    publishSource(reg, src, cfg.Cry.Source),
				Running:   analyzer.Running(),
				Threshold: ccfg.Threshold,
				History:   analyzer.History(),
				Notice:    analyzer.Notice(),
				Format:    an.Config(),
			}
			if cfg.Log.Debug {
				scene.Metrics = []string{reg.Line()}
			}
			if f := latest.Load(); f != nil {
				scene.Frame = *f
			}
			if r, ok := analyzer.Current(); ok {
				scene.Current = &r
			}
			view.Draw(scene)
		}
	}
}

// toggle starts or stops capture
func toggle(ctx context.Context, a *cry.Analyzer) {
	if a.Running() {
		if err := a.Stop(); err != nil {
			log.Printf("cryscope: %v", err)
		}
		return
	}
	if err := a.Start(ctx); err != nil {
		log.Printf("cryscope: %v", err)
	}
}
