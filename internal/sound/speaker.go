package sound

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Speaker plays the clips through beep's speaker. The terminal frontend
// uses it since it has no ebiten audio context.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	buffers     map[sim.SoundID]*beep.Buffer
	volume      float64
	initialized bool
}

// NewSpeaker renders the clips into memory buffers. Call Initialize before
// Play.
func NewSpeaker(sr beep.SampleRate, volume float64, seed int64) (*Speaker, error) {
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	roar, err := Roar(sr)
	if err != nil {
		return nil, err
	}
	streams := map[sim.SoundID]beep.Streamer{
		sim.SoundRoar:    roar,
		sim.SoundDestroy: Destroy(sr, seed),
	}
	sp := &Speaker{
		mixer:   &beep.Mixer{},
		buffers: make(map[sim.SoundID]*beep.Buffer, len(streams)),
		volume:  math.Max(0, math.Min(1, volume)),
	}
	for id, s := range streams {
		buf := beep.NewBuffer(format)
		buf.Append(s)
		sp.buffers[id] = buf
	}
	return sp, nil
}

// Initialize opens the audio device.
func (sp *Speaker) Initialize() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.initialized {
		return nil
	}
	sr := sp.buffers[sim.SoundRoar].Format().SampleRate
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(sp.mixer)
	sp.initialized = true
	log.Printf("[Sound] speaker ready at %d Hz", sr)
	return nil
}

// Play mixes a fresh copy of id into the output. Before Initialize it
// does nothing.
func (sp *Speaker) Play(id sim.SoundID) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	buf, ok := sp.buffers[id]
	if !ok {
		return fmt.Errorf("sound %s: no clip", id)
	}
	if !sp.initialized {
		return nil
	}
	speaker.Lock()
	sp.mixer.Add(gain(buf.Streamer(0, buf.Len()), sp.volume))
	speaker.Unlock()
	return nil
}

// Len returns the clip length in samples, or 0 if id is unknown.
func (sp *Speaker) Len(id sim.SoundID) int {
	if buf, ok := sp.buffers[id]; ok {
		return buf.Len()
	}
	return 0
}

// Close silences the mixer and releases the device.
func (sp *Speaker) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return
	}
	speaker.Lock()
	sp.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sp.initialized = false
}
