// Package save persists the high score.
package save

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage keys.
const (
	scoresObject   = "scores"
	scoresProp     = "high"
	DefaultAppName = "vibezilla"
)

// Record is the stored payload.
type Record struct {
	HighScore int       `yaml:"highScore"`
	SavedAt   time.Time `yaml:"savedAt"`
}

// GdataStore keeps the high score in the platform data directory via gdata
// (a file on desktop, localStorage under wasm).
type GdataStore struct {
	m *gdata.Manager
}

// OpenGdata opens the store for appName.
func OpenGdata(appName string) (*GdataStore, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open gdata %q: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

// LoadHighScore returns ok=false when no score has been saved yet.
func (s *GdataStore) LoadHighScore() (int, bool, error) {
	if !s.m.ObjectPropExists(scoresObject, scoresProp) {
		return 0, false, nil
	}
	data, err := s.m.LoadObjectProp(scoresObject, scoresProp)
	if err != nil {
		return 0, false, fmt.Errorf("load high score: %w", err)
	}
	rec, err := decodeRecord(data)
	if err != nil {
		return 0, false, err
	}
	return rec.HighScore, true, nil
}

// SaveHighScore overwrites the stored score.
func (s *GdataStore) SaveHighScore(score int) error {
	data, err := encodeRecord(Record{HighScore: score, SavedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	if err := s.m.SaveObjectProp(scoresObject, scoresProp, data); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	log.Printf("[Save] high score %d saved", score)
	return nil
}

func encodeRecord(rec Record) ([]byte, error) {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal score record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("unmarshal score record: %w", err)
	}
	if rec.HighScore < 0 {
		return Record{}, fmt.Errorf("unmarshal score record: negative score %d", rec.HighScore)
	}
	return rec, nil
}

// MemoryStore is an in-process store for tests and headless runs.
type MemoryStore struct {
	mu    sync.Mutex
	score int
	set   bool
	saves int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns a store already holding score.
func NewMemoryStoreWith(score int) *MemoryStore {
	return &MemoryStore{score: score, set: true}
}

func (s *MemoryStore) LoadHighScore() (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score, s.set, nil
}

func (s *MemoryStore) SaveHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = score
	s.set = true
	s.saves++
	return nil
}

// Saves returns how many times SaveHighScore was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Open returns the persistent store for appName, or a memory store when
// saving is disabled or the data directory cannot be opened.
func Open(enabled bool, appName string) sim.HighScoreStore {
	if !enabled {
		return NewMemoryStore()
	}
	st, err := OpenGdata(appName)
	if err != nil {
		log.Printf("[Save] %v; high score will not persist", err)
		return NewMemoryStore()
	}
	return st
}
