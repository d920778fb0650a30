// Package config loads game settings from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read after .env is loaded.
const (
	EnvMapsAPIKey = "VIBEZILLA_MAPS_API_KEY"
	EnvSeed       = "VIBEZILLA_SEED"
	EnvSaveApp    = "VIBEZILLA_SAVE_APP"
)

// DefaultPath is the config file read when no -config flag is given.
const DefaultPath = "vibezilla.yaml"

type Config struct {
	Map    MapConfig    `yaml:"map"`
	Window WindowConfig `yaml:"window"`
	Tuning TuningConfig `yaml:"tuning"`
	Audio  AudioConfig  `yaml:"audio"`
	Save   SaveConfig   `yaml:"save"`
	// Seed 0 means pick one from the clock.
	Seed int64 `yaml:"seed"`
}

type MapConfig struct {
	Lat    float64 `yaml:"lat"`
	Lng    float64 `yaml:"lng"`
	Zoom   int     `yaml:"zoom"`
	APIKey string  `yaml:"apiKey"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type TuningConfig struct {
	Acceleration      float64 `yaml:"acceleration"`
	MaxSpeed          float64 `yaml:"maxSpeed"`
	Friction          float64 `yaml:"friction"`
	DestructionRadius float64 `yaml:"destructionRadius"`
	Gravity           float64 `yaml:"gravity"`
	DebrisCapacity    int     `yaml:"debrisCapacity"`
	RubbleCapacity    int     `yaml:"rubbleCapacity"`
	MonsterSize       float64 `yaml:"monsterSize"`
	GridStep          float64 `yaml:"gridStep"`
	Jitter            float64 `yaml:"jitter"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sampleRate"`
}

type SaveConfig struct {
	Enabled bool   `yaml:"enabled"`
	AppName string `yaml:"appName"`
}

// Default returns the built-in settings.
func Default() Config {
	t := sim.DefaultTuning()
	return Config{
		Map: MapConfig{
			Lat:  sim.DefaultCenter.Lat,
			Lng:  sim.DefaultCenter.Lng,
			Zoom: sim.DefaultZoom,
		},
		Window: WindowConfig{Title: "Vibezilla", Width: 1280, Height: 720},
		Tuning: TuningConfig{
			Acceleration:      t.Acceleration,
			MaxSpeed:          t.MaxSpeed,
			Friction:          t.Friction,
			DestructionRadius: t.DestructionRadius,
			Gravity:           t.Gravity,
			DebrisCapacity:    t.DebrisCapacity,
			RubbleCapacity:    t.RubbleCapacity,
			MonsterSize:       t.AgentSize,
			GridStep:          t.GridStep,
			Jitter:            t.Jitter,
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.8, SampleRate: 44100},
		Save:  SaveConfig{Enabled: true, AppName: "vibezilla"},
	}
}

// Overrides are command-line values applied last. Zero values are ignored.
type Overrides struct {
	APIKey string
	Seed   int64
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	Path      string   // YAML file; missing is fine
	EnvFiles  []string // .env files; missing is fine
	Overrides Overrides
}

// Load builds the effective configuration: defaults, then the YAML file,
// then .env files and the process environment, then overrides.
func Load(opts LoadOptions) (Config, error) {
	cfg, err := LoadFile(opts.Path)
	if err != nil {
		return Config{}, err
	}
	if err := LoadDotEnv(opts.EnvFiles...); err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if opts.Overrides.APIKey != "" {
		cfg.Map.APIKey = opts.Overrides.APIKey
	}
	if opts.Overrides.Seed != 0 {
		cfg.Seed = opts.Overrides.Seed
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML file over the defaults. An empty path or a missing
// file yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	log.Printf("[Config] loaded %s", path)
	return cfg, nil
}

// LoadDotEnv loads each existing file into the process environment.
// Variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env file %s: %w", p, err)
		}
		log.Printf("[Config] loaded environment from %s", p)
	}
	return nil
}

// ApplyEnv copies recognised variables from lookup into cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvMapsAPIKey); ok && v != "" {
		cfg.Map.APIKey = v
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(EnvSaveApp); ok && v != "" {
		cfg.Save.AppName = v
	}
	return nil
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	t := c.Tuning
	switch {
	case c.Map.Zoom < 1 || c.Map.Zoom > 21:
		return fmt.Errorf("map.zoom %d out of range [1,21]", c.Map.Zoom)
	case c.Map.Lat < -85 || c.Map.Lat > 85:
		return fmt.Errorf("map.lat %.4f out of range [-85,85]", c.Map.Lat)
	case c.Map.Lng < -180 || c.Map.Lng > 180:
		return fmt.Errorf("map.lng %.4f out of range [-180,180]", c.Map.Lng)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case t.Acceleration <= 0 || t.MaxSpeed <= 0:
		return errors.New("tuning.acceleration and tuning.maxSpeed must be positive")
	case t.Friction <= 0 || t.Friction > 1:
		return fmt.Errorf("tuning.friction %.3f out of range (0,1]", t.Friction)
	case t.DestructionRadius <= 0:
		return errors.New("tuning.destructionRadius must be positive")
	case t.DebrisCapacity <= 0 || t.RubbleCapacity <= 0:
		return errors.New("tuning pool capacities must be positive")
	case t.GridStep <= 0 || t.Jitter < 0:
		return errors.New("tuning.gridStep must be positive and tuning.jitter non-negative")
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio.volume %.2f out of range [0,1]", c.Audio.Volume)
	case c.Audio.SampleRate <= 0:
		return errors.New("audio.sampleRate must be positive")
	}
	return nil
}

// SimTuning converts the tuning section for the simulation.
func (c Config) SimTuning() sim.Tuning {
	t := c.Tuning
	return sim.Tuning{
		Acceleration:      t.Acceleration,
		MaxSpeed:          t.MaxSpeed,
		Friction:          t.Friction,
		DestructionRadius: t.DestructionRadius,
		Gravity:           t.Gravity,
		DebrisCapacity:    t.DebrisCapacity,
		RubbleCapacity:    t.RubbleCapacity,
		AgentSize:         t.MonsterSize,
		GridStep:          t.GridStep,
		Jitter:            t.Jitter,
	}
}

// Center returns the map centre.
func (c Config) Center() sim.LatLng {
	return sim.LatLng{Lat: c.Map.Lat, Lng: c.Map.Lng}
}

// MaskedAPIKey shows only the last four characters of the key.
func (c Config) MaskedAPIKey() string {
	k := c.Map.APIKey
	if k == "" {
		return "(none)"
	}
	if len(k) <= 4 {
		return strings.Repeat("*", len(k))
	}
	return strings.Repeat("*", len(k)-4) + k[len(k)-4:]
}
