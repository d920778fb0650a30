package sound

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// voicesPerClip is how many copies of one clip may overlap.
const voicesPerClip = 4

// Clips holds rendered PCM for every sound.
type Clips map[sim.SoundID][]byte

// RenderClips synthesises every sound at sr.
func RenderClips(sr beep.SampleRate, seed int64) (Clips, error) {
	roar, err := Roar(sr)
	if err != nil {
		return nil, err
	}
	clips := Clips{}
	if clips[sim.SoundRoar], err = RenderPCM(roar); err != nil {
		return nil, err
	}
	if clips[sim.SoundDestroy], err = RenderPCM(Destroy(sr, seed)); err != nil {
		return nil, err
	}
	return clips, nil
}

// Bank plays clips through an ebiten audio context. It satisfies
// sim.SoundPlayer.
type Bank struct {
	mu     sync.Mutex
	voices map[sim.SoundID][]*audio.Player
	next   map[sim.SoundID]int
	volume float64
}

// NewBank creates a bank on the process audio context, creating the
// context at sampleRate if none exists yet.
func NewBank(sampleRate int, volume float64, seed int64) (*Bank, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		log.Printf("[Sound] audio context already at %d Hz, ignoring %d", ctx.SampleRate(), sampleRate)
		sampleRate = ctx.SampleRate()
	}
	clips, err := RenderClips(beep.SampleRate(sampleRate), seed)
	if err != nil {
		return nil, err
	}
	b := &Bank{
		voices: make(map[sim.SoundID][]*audio.Player, len(clips)),
		next:   make(map[sim.SoundID]int, len(clips)),
		volume: math.Max(0, math.Min(1, volume)),
	}
	for id, pcm := range clips {
		for i := 0; i < voicesPerClip; i++ {
			p := ctx.NewPlayerFromBytes(pcm)
			p.SetVolume(b.volume)
			b.voices[id] = append(b.voices[id], p)
		}
	}
	log.Printf("[Sound] bank ready: %d clips at %d Hz, volume %.2f", len(clips), sampleRate, b.volume)
	return b, nil
}

// Play starts id on the least recently used voice, cutting it off if it
// is still playing.
func (b *Bank) Play(id sim.SoundID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	voices := b.voices[id]
	if len(voices) == 0 {
		return fmt.Errorf("sound %s: no clip", id)
	}
	i := b.next[id]
	b.next[id] = (i + 1) % len(voices)
	p := voices[i]
	if err := p.Rewind(); err != nil {
		return fmt.Errorf("sound %s: rewind: %w", id, err)
	}
	p.Play()
	return nil
}

// SetVolume changes the volume of every voice.
func (b *Bank) SetVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = math.Max(0, math.Min(1, v))
	for _, voices := range b.voices {
		for _, p := range voices {
			p.SetVolume(b.volume)
		}
	}
}

// Volume returns the current volume.
func (b *Bank) Volume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.volume
}

// Silent discards every sound. Used when audio is disabled or the device
// cannot be opened.
type Silent struct{}

func (Silent) Play(sim.SoundID) error { return nil }
