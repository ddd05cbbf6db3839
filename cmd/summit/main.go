package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/climb"
	"github.com/portfolio-lab/summit/config"
	"github.com/portfolio-lab/summit/core"
	"github.com/portfolio-lab/summit/engine"
	"github.com/portfolio-lab/summit/input"
	"github.com/portfolio-lab/summit/render"
	"github.com/portfolio-lab/summit/status"
	"github.com/portfolio-lab/summit/storage"
	"github.com/portfolio-lab/summit/vmath"
)

func main() {
	configPath := flag.String("config", "", "Config file (.toml, .yaml, .yml)")
	seed := flag.Uint64("seed", 0, "RNG seed, 0 for time-based")
	sound := flag.Bool("sound", false, "Enable sound effects")
	dataDir := flag.String("data", "", "Directory holding the score database")
	debug := flag.Bool("debug", false, "Log to logs/summit.log and show metrics")
	stats := flag.Bool("stats", false, "Print the best sessions and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "summit: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Game.Seed = *seed
		case "sound":
			cfg.Game.Sound = *sound
		case "data":
			cfg.Storage.DataDir = *dataDir
		case "debug":
			cfg.Log.Debug = *debug
		}
	})

	if logFile := core.SetupLogging("summit", cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	store, err := storage.OpenOrMemory(cfg.Storage.DataDir)
	var scores climb.HighScoreStore = &climb.MemoryStore{}
	var sessions sessionRecorder
	if err != nil {
		log.Printf("summit: no database, scores kept in memory: %v", err)
	} else {
		defer store.Close()
		scores = store
		sessions = store
	}

	if *stats {
		if store == nil {
			fmt.Fprintln(os.Stderr, "summit: no database available")
			os.Exit(1)
		}
		if err := printStats(os.Stdout, store, 10); err != nil {
			fmt.Fprintf(os.Stderr, "summit: %v\n", err)
			os.Exit(1)
		}
		return
	}

	keys, err := keyTable(cfg.Game.Keymap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "summit: %v\n", err)
		os.Exit(1)
	}

	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = uint64(time.Now().UnixNano())
	}
	log.Printf("summit: seed %d", cfg.Game.Seed)

	reg := status.NewRegistry()
	game := climb.NewGame(climb.Config{}, vmath.NewFastRand(cfg.Game.Seed), scores, reg)
	shakeRng := vmath.NewFastRand(cfg.Game.Seed ^ 0x9E3779B97F4A7C15)

	sfx := audio.NewSoundManager(vmath.NewFastRand(cfg.Game.Seed + 1))
	if cfg.Game.Sound {
		if err := sfx.Initialize(); err != nil {
			log.Printf("summit: audio unavailable: %v", err)
		} else {
			sfx.SetMuted(false)
		}
	}
	defer sfx.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "summit: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "summit: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	core.SetCrashTerminal(screen)
	screen.EnableMouse()
	screen.HideCursor()

	view := render.NewClimbView(screen)
	tracker := newSessionTracker(sessions)

	sched := engine.NewScheduler(cfg.TickInterval(), nil, game.Step)
	sched.SetFrameHook(func() {
		// Actions queued while paused are applied here since no step runs
		game.Apply()

		st := game.Status()
		clock := sched.Clock()
		if st == climb.StatusPaused {
			if !clock.IsPaused() {
				clock.Pause()
			}
		} else if clock.IsPaused() {
			clock.Resume()
		}

		events := game.DrainEvents()
		for _, ev := range events {
			if s, ok := soundFor(ev.Type); ok {
				sfx.Play(s)
			}
		}
		tracker.Observe(st, events, game.Summary())

		snap := game.Snapshot()
		sx, sy := climb.ShakeOffset(snap.Shake, shakeRng)
		scene := render.ClimbScene{Snapshot: snap, ShakeX: sx, ShakeY: sy, Muted: sfx.Muted()}
		if cfg.Log.Debug {
			scene.Metrics = metricLines(reg, sched)
		}
		view.Draw(scene)
	})
	sched.Start()
	defer sched.Stop()

	machine := input.NewMachine(keys)
	for {
		intent := machine.Process(screen.PollEvent())
		if intent == nil {
			continue
		}
		switch intent.Type {
		case input.IntentQuit:
			return
		case input.IntentResize:
			screen.Sync()
		case input.IntentToggleMute:
			if err := sfx.Initialize(); err != nil {
				log.Printf("summit: audio unavailable: %v", err)
				continue
			}
			sfx.ToggleMute()
		default:
			if action, ok := gameAction(intent.Type); ok {
				game.Enqueue(action)
			}
		}
	}
}
