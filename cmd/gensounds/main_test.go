package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Vibezilla/internal/sound"
)

func TestRun_WritesBothClips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sounds")
	if err := run(dir, sound.DefaultSampleRate, 1); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := map[string]int64{
		"roar.wav":    44 + 88200*4,
		"destroy.wav": 44 + 66150*4,
	}
	for name, size := range want {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if fi.Size() != size {
			t.Fatalf("%s: expected %d bytes, got %d", name, size, fi.Size())
		}
	}
}

func TestRun_RejectsBadRate(t *testing.T) {
	if err := run(t.TempDir(), 0, 1); err == nil {
		t.Fatal("expected an error for a zero sample rate")
	}
}
