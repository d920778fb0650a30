package main

import (
	"flag"
	"log"
	"time"

	"github.com/Garsondee/Vibezilla/internal/config"
	"github.com/Garsondee/Vibezilla/internal/game"
	"github.com/Garsondee/Vibezilla/internal/save"
	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/Garsondee/Vibezilla/internal/sound"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var cfgPath string
	var apiKey string
	var seed int64

	flag.StringVar(&cfgPath, "config", config.DefaultPath, "YAML settings file")
	flag.StringVar(&apiKey, "api-key", "", "maps API key (overrides "+config.EnvMapsAPIKey+")")
	flag.Int64Var(&seed, "seed", 0, "RNG seed; 0 picks one from the clock")
	flag.Parse()

	cfg, err := config.Load(config.LoadOptions{
		Path:      cfgPath,
		EnvFiles:  []string{".env"},
		Overrides: config.Overrides{APIKey: apiKey, Seed: seed},
	})
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log.Printf("[Main] center=(%.4f,%.4f) zoom=%d key=%s seed=%d",
		cfg.Map.Lat, cfg.Map.Lng, cfg.Map.Zoom, cfg.MaskedAPIKey(), cfg.Seed)

	var player sim.SoundPlayer = sound.Silent{}
	if cfg.Audio.Enabled {
		bank, err := sound.NewBank(cfg.Audio.SampleRate, cfg.Audio.Volume, cfg.Seed)
		if err != nil {
			log.Printf("[Main] audio disabled: %v", err)
		} else {
			player = bank
		}
	}

	g := game.New(game.Options{
		Config: cfg,
		Store:  save.Open(cfg.Save.Enabled, cfg.Save.AppName),
		Sound:  player,
		Seed:   cfg.Seed,
	})

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
