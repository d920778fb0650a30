// Command gensounds renders the game's sound effects to WAV files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Garsondee/Vibezilla/internal/sound"
	"github.com/gopxl/beep"
)

func main() {
	var outDir string
	var rate int
	var seed int64

	flag.StringVar(&outDir, "out", "assets/sounds", "output directory")
	flag.IntVar(&rate, "rate", int(sound.DefaultSampleRate), "sample rate in Hz")
	flag.Int64Var(&seed, "seed", 1, "noise seed for the destroy sound")
	flag.Parse()

	if err := run(outDir, beep.SampleRate(rate), seed); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(outDir string, sr beep.SampleRate, seed int64) error {
	if sr <= 0 {
		return fmt.Errorf("sample rate must be > 0, got %d", sr)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	roar, err := sound.Roar(sr)
	if err != nil {
		return err
	}
	clips := []struct {
		name string
		s    beep.Streamer
	}{
		{"roar.wav", roar},
		{"destroy.wav", sound.Destroy(sr, seed)},
	}
	for _, c := range clips {
		path := filepath.Join(outDir, c.name)
		if err := writeFile(path, c.s, sr); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func writeFile(path string, s beep.Streamer, sr beep.SampleRate) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sound.WriteWAV(f, s, sr); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
