package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/Garsondee/Vibezilla/internal/config"
	"github.com/Garsondee/Vibezilla/internal/save"
	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/Garsondee/Vibezilla/internal/sound"
	"github.com/Garsondee/Vibezilla/internal/tty"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
)

func main() {
	var cfgPath string
	var seed int64
	var logPath string
	var mute bool

	flag.StringVar(&cfgPath, "config", config.DefaultPath, "YAML settings file")
	flag.Int64Var(&seed, "seed", 0, "RNG seed; 0 picks one from the clock")
	flag.StringVar(&logPath, "log", "", "write logs to this file (default: discard)")
	flag.BoolVar(&mute, "mute", false, "disable sound")
	flag.Parse()

	// The screen owns the terminal, so logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.Load(config.LoadOptions{
		Path:      cfgPath,
		EnvFiles:  []string{".env"},
		Overrides: config.Overrides{Seed: seed},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var player sim.SoundPlayer = sound.Silent{}
	if cfg.Audio.Enabled && !mute {
		sp, err := sound.NewSpeaker(beep.SampleRate(cfg.Audio.SampleRate), cfg.Audio.Volume, cfg.Seed)
		if err == nil {
			err = sp.Initialize()
		}
		if err != nil {
			log.Printf("[Main] audio disabled: %v", err)
		} else {
			defer sp.Close()
			player = sp
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	app := tty.New(screen, tty.Options{
		Config: cfg,
		Store:  save.Open(cfg.Save.Enabled, cfg.Save.AppName),
		Sound:  player,
		Seed:   cfg.Seed,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx); err != nil && err != context.Canceled {
		log.Printf("[Main] %v", err)
	}
}
