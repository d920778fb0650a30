// Package sound synthesises and plays the game's two sound effects.
package sound

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// DefaultSampleRate matches the shipped WAV assets.
const DefaultSampleRate = beep.SampleRate(44100)

// Roar: two low sines under an exponential decay.
const (
	roarDuration = 2 * time.Second
	roarLowHz    = 60.0
	roarLowGain  = 0.6
	roarHighHz   = 90.0
	roarHighGain = 0.4
	roarDecay    = 2.0 // 1/s
)

// Destroy: white noise under a faster decay.
const (
	destroyDuration = 1500 * time.Millisecond
	destroyDecay    = 3.0 // 1/s
)

// Roar returns the start-of-session roar.
func Roar(sr beep.SampleRate) (beep.Streamer, error) {
	low, err := generators.SineTone(sr, roarLowHz)
	if err != nil {
		return nil, fmt.Errorf("roar low tone: %w", err)
	}
	high, err := generators.SineTone(sr, roarHighHz)
	if err != nil {
		return nil, fmt.Errorf("roar high tone: %w", err)
	}
	mix := beep.Mix(gain(low, roarLowGain), gain(high, roarHighGain))
	return beep.Take(sr.N(roarDuration), decay(mix, sr, roarDecay)), nil
}

// Destroy returns the building collapse noise. seed fixes the noise so
// renders are reproducible.
func Destroy(sr beep.SampleRate, seed int64) beep.Streamer {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- audio noise
	noise := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
	return beep.Take(sr.N(destroyDuration), decay(noise, sr, destroyDecay))
}

// gain scales s by a linear factor.
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// expDecay multiplies the stream by exp(-k*t).
type expDecay struct {
	s    beep.Streamer
	step float64 // per-sample multiplier
	amp  float64
}

func decay(s beep.Streamer, sr beep.SampleRate, k float64) beep.Streamer {
	return &expDecay{s: s, step: math.Exp(-k / float64(sr)), amp: 1}
}

func (d *expDecay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.s.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] *= d.amp
		samples[i][1] *= d.amp
		d.amp *= d.step
	}
	return n, ok
}

func (d *expDecay) Err() error { return d.s.Err() }

// RenderPCM drains s into signed 16-bit little-endian stereo PCM, the
// format ebiten's audio players take.
func RenderPCM(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for c := 0; c < 2; c++ {
				v := int16(math.Round(clamp(buf[i][c]) * math.MaxInt16))
				out = append(out, byte(v), byte(v>>8))
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("render pcm: %w", err)
	}
	return out, nil
}

// WriteWAV encodes s as a 16-bit stereo WAV file.
func WriteWAV(w io.WriteSeeker, s beep.Streamer, sr beep.SampleRate) error {
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
