package save

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// openTestGdata opens a throwaway gdata store, skipping when the platform
// data directory is unavailable.
func openTestGdata(t *testing.T) *GdataStore {
	t.Helper()
	appName := fmt.Sprintf("vibezilla_test_%d", time.Now().UnixNano())
	st, err := OpenGdata(appName)
	if err != nil {
		t.Skipf("cannot open gdata store: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			_ = os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return st
}

func TestGdataStore_EmptyIsAbsent(t *testing.T) {
	st := openTestGdata(t)
	score, ok, err := st.LoadHighScore()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok || score != 0 {
		t.Fatalf("expected absent score, got ok=%v score=%d", ok, score)
	}
}

func TestGdataStore_SaveThenLoad(t *testing.T) {
	st := openTestGdata(t)
	if err := st.SaveHighScore(1200); err != nil {
		t.Fatalf("save: %v", err)
	}
	score, ok, err := st.LoadHighScore()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || score != 1200 {
		t.Fatalf("expected 1200, got ok=%v score=%d", ok, score)
	}
}

func TestDecodeRecord_RejectsGarbage(t *testing.T) {
	if _, err := decodeRecord([]byte("highScore: [1, 2")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestDecodeRecord_RejectsNegative(t *testing.T) {
	_, err := decodeRecord([]byte("highScore: -5\n"))
	if err == nil || !strings.Contains(err.Error(), "negative") {
		t.Fatalf("expected negative score error, got %v", err)
	}
}

func TestEncodeRecord_UsesYAMLKeys(t *testing.T) {
	data, err := encodeRecord(Record{HighScore: 300})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), "highScore: 300") {
		t.Fatalf("unexpected payload:\n%s", data)
	}
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore()
	if _, ok, _ := st.LoadHighScore(); ok {
		t.Fatal("new memory store should be empty")
	}
	if err := st.SaveHighScore(50); err != nil {
		t.Fatalf("save: %v", err)
	}
	score, ok, _ := st.LoadHighScore()
	if !ok || score != 50 {
		t.Fatalf("expected 50, got ok=%v score=%d", ok, score)
	}
	if st.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", st.Saves())
	}
}

func TestOpen_DisabledUsesMemory(t *testing.T) {
	st := Open(false, "vibezilla-test")
	if _, ok := st.(*MemoryStore); !ok {
		t.Fatalf("expected a memory store, got %T", st)
	}
}
