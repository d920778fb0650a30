package sound

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	return out
}

func rms(samples [][2]float64) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s[0] * s[0]
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func TestRoar_LengthAndDecay(t *testing.T) {
	s, err := Roar(DefaultSampleRate)
	if err != nil {
		t.Fatalf("roar: %v", err)
	}
	samples := drain(t, s)
	if len(samples) != 2*44100 {
		t.Fatalf("expected 88200 samples, got %d", len(samples))
	}
	for i, v := range samples {
		if math.Abs(v[0]) > 1 || v[0] != v[1] {
			t.Fatalf("sample %d out of range or not mono: %v", i, v)
		}
	}
	head := rms(samples[:4410])
	tail := rms(samples[len(samples)-4410:])
	if tail >= head*0.1 {
		t.Fatalf("roar should decay by e^-4 over 2s: head=%.4f tail=%.4f", head, tail)
	}
}

func TestRoar_StartsAtMixedPeak(t *testing.T) {
	s, _ := Roar(DefaultSampleRate)
	samples := drain(t, s)
	peak := 0.0
	for _, v := range samples[:44100/30] {
		peak = math.Max(peak, math.Abs(v[0]))
	}
	// 0.6+0.4 can never exceed 1; the first cycles should get close.
	if peak < 0.8 || peak > 1 {
		t.Fatalf("expected early peak in [0.8,1], got %.4f", peak)
	}
}

func TestDestroy_DeterministicPerSeed(t *testing.T) {
	a := drain(t, Destroy(DefaultSampleRate, 42))
	b := drain(t, Destroy(DefaultSampleRate, 42))
	c := drain(t, Destroy(DefaultSampleRate, 43))
	if len(a) != 66150 {
		t.Fatalf("expected 1.5s = 66150 samples, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for the same seed", i)
		}
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
	if tail := rms(a[len(a)-4410:]); tail >= rms(a[:4410])*0.05 {
		t.Fatalf("destroy should decay by e^-4.5 over 1.5s, tail rms %.4f", tail)
	}
}

func TestRenderPCM_Format(t *testing.T) {
	pcm, err := RenderPCM(Destroy(DefaultSampleRate, 1))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(pcm) != 66150*4 {
		t.Fatalf("expected 4 bytes per stereo frame, got %d bytes", len(pcm))
	}
	l := int16(binary.LittleEndian.Uint16(pcm[0:2]))
	r := int16(binary.LittleEndian.Uint16(pcm[2:4]))
	if l != r {
		t.Fatalf("channels should match, got %d and %d", l, r)
	}
}

func TestRenderClips(t *testing.T) {
	clips, err := RenderClips(DefaultSampleRate, 7)
	if err != nil {
		t.Fatalf("render clips: %v", err)
	}
	if len(clips[sim.SoundRoar]) != 88200*4 || len(clips[sim.SoundDestroy]) != 66150*4 {
		t.Fatalf("unexpected clip sizes roar=%d destroy=%d", len(clips[sim.SoundRoar]), len(clips[sim.SoundDestroy]))
	}
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roar.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s, _ := Roar(DefaultSampleRate)
	if err := WriteWAV(f, s, DefaultSampleRate); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		t.Fatalf("missing RIFF/WAVE header: %q", data[:12])
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 44100 {
		t.Fatalf("expected 44100 Hz header, got %d", rate)
	}
	if len(data) != 44+88200*4 {
		t.Fatalf("expected %d bytes, got %d", 44+88200*4, len(data))
	}
}

func TestSilent(t *testing.T) {
	var p sim.SoundPlayer = Silent{}
	if err := p.Play(sim.SoundRoar); err != nil {
		t.Fatalf("silent player returned %v", err)
	}
}

func TestSpeaker_BuffersWithoutDevice(t *testing.T) {
	sp, err := NewSpeaker(DefaultSampleRate, 0.5, 1)
	if err != nil {
		t.Fatalf("new speaker: %v", err)
	}
	if sp.Len(sim.SoundRoar) != 88200 || sp.Len(sim.SoundDestroy) != 66150 {
		t.Fatalf("unexpected buffer lengths roar=%d destroy=%d", sp.Len(sim.SoundRoar), sp.Len(sim.SoundDestroy))
	}
	// Not initialised: plays are dropped, unknown clips still error.
	if err := sp.Play(sim.SoundRoar); err != nil {
		t.Fatalf("play before init: %v", err)
	}
	if err := sp.Play(sim.SoundID(99)); err == nil {
		t.Fatal("expected an error for an unknown clip")
	}
	sp.Close()
}
