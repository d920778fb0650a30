package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestPool_AcquireUntilFull(t *testing.T) {
	p := NewPool[Debris](3)
	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		idx, d, ok := p.Acquire()
		if !ok || d == nil {
			t.Fatalf("acquire %d failed", i)
		}
		if seen[idx] {
			t.Fatalf("slot %d handed out twice", idx)
		}
		seen[idx] = true
	}
	if _, _, ok := p.Acquire(); ok {
		t.Fatal("acquire on a full pool should fail")
	}
	if p.Len() != 3 || p.Misses() != 1 {
		t.Fatalf("expected len=3 misses=1, got len=%d misses=%d", p.Len(), p.Misses())
	}
}

func TestPool_ResetHandsOutLowestFirst(t *testing.T) {
	p := NewPool[Rubble](4)
	for want := 0; want < 4; want++ {
		idx, _, _ := p.Acquire()
		if idx != want {
			t.Fatalf("expected slot %d, got %d", want, idx)
		}
	}
	p.Reset()
	if idx, _, _ := p.Acquire(); idx != 0 {
		t.Fatalf("expected slot 0 after reset, got %d", idx)
	}
}

func TestPool_ReleaseReusesAndZeroes(t *testing.T) {
	p := NewPool[Debris](2)
	idx, d, _ := p.Acquire()
	d.Life = 5
	d.Pos = Point{X: 1, Y: 2}
	p.Release(idx)
	if p.Active(idx) || p.Len() != 0 {
		t.Fatal("released slot still active")
	}

	idx2, d2, ok := p.Acquire()
	if !ok || idx2 != idx {
		t.Fatalf("expected slot %d reused, got %d", idx, idx2)
	}
	if d2.Life != 0 || d2.Pos != (Point{}) {
		t.Fatalf("reused slot not zeroed: %+v", *d2)
	}
}

func TestPool_ReleaseInactiveIsNoop(t *testing.T) {
	p := NewPool[Debris](2)
	idx, _, _ := p.Acquire()
	p.Release(idx)
	p.Release(idx)
	p.Release(-1)
	p.Release(99)
	if p.Len() != 0 {
		t.Fatalf("expected len 0, got %d", p.Len())
	}
	// A double release must not let the same slot be handed out twice.
	a, _, _ := p.Acquire()
	b, _, _ := p.Acquire()
	if a == b {
		t.Fatalf("slot %d handed out twice after double release", a)
	}
	if _, _, ok := p.Acquire(); ok {
		t.Fatal("pool of 2 handed out a third slot")
	}
}

func TestPool_EachMayRelease(t *testing.T) {
	p := NewPool[Debris](5)
	for i := 0; i < 5; i++ {
		_, d, _ := p.Acquire()
		d.Life = float64(i)
	}
	p.Each(func(idx int, d *Debris) {
		if int(d.Life)%2 == 0 {
			p.Release(idx)
		}
	})
	if p.Len() != 2 {
		t.Fatalf("expected 2 survivors, got %d", p.Len())
	}
}

func TestPool_ZeroCapacity(t *testing.T) {
	p := NewPool[Debris](-3)
	if p.Cap() != 0 {
		t.Fatalf("expected cap 0, got %d", p.Cap())
	}
	if _, _, ok := p.Acquire(); ok {
		t.Fatal("empty pool handed out a slot")
	}
}

func TestEffects_SpawnRangesAndGravity(t *testing.T) {
	fx := NewEffects(DefaultTuning())
	rng := rand.New(rand.NewSource(11))
	at := Point{X: 100, Y: 100}
	for i := 0; i < 20; i++ {
		fx.SpawnDebris(at, rng)
	}
	fx.Debris.Each(func(_ int, d *Debris) {
		if d.Vel.X < -50 || d.Vel.X > 50 {
			t.Fatalf("vx %.2f out of [-50,50]", d.Vel.X)
		}
		if d.Vel.Y < -100 || d.Vel.Y > 0 {
			t.Fatalf("vy %.2f out of [-100,0]", d.Vel.Y)
		}
		if d.Life < 1 || d.Life > 2 {
			t.Fatalf("life %.2f out of [1,2]", d.Life)
		}
	})

	var before []Vec2
	fx.Debris.Each(func(_ int, d *Debris) { before = append(before, d.Vel) })
	fx.Update(0.1)
	i := 0
	fx.Debris.Each(func(_ int, d *Debris) {
		if math.Abs(d.Vel.Y-(before[i].Y+20)) > 1e-9 {
			t.Fatalf("gravity not applied: %.4f -> %.4f", before[i].Y, d.Vel.Y)
		}
		i++
	})
}

func TestEffects_DebrisExpires(t *testing.T) {
	fx := NewEffects(DefaultTuning())
	_, d, _ := fx.Debris.Acquire()
	d.Life = 0.04
	fx.Update(DefaultTickDT)
	if fx.Debris.Len() != 1 {
		t.Fatal("debris expired early")
	}
	fx.Update(DefaultTickDT)
	fx.Update(DefaultTickDT)
	if fx.Debris.Len() != 0 {
		t.Fatalf("expected debris released at life<=0, got %d active", fx.Debris.Len())
	}
}

func TestDebris_Opacity(t *testing.T) {
	cases := []struct{ life, want float64 }{
		{2, 1}, {1, 1}, {0.25, 0.25}, {0, 0}, {-1, 0},
	}
	for _, c := range cases {
		d := Debris{Life: c.life}
		if got := d.Opacity(); got != c.want {
			t.Fatalf("life %.2f: opacity %.2f, want %.2f", c.life, got, c.want)
		}
	}
}

func TestEffects_PlaceRubbleFull(t *testing.T) {
	tu := DefaultTuning()
	tu.RubbleCapacity = 1
	fx := NewEffects(tu)
	if !fx.PlaceRubble(Point{X: 1}) {
		t.Fatal("first rubble should fit")
	}
	if fx.PlaceRubble(Point{X: 2}) {
		t.Fatal("second rubble should be dropped")
	}
	fx.Reset()
	if fx.Rubble.Len() != 0 || fx.Rubble.Misses() != 0 {
		t.Fatal("reset should clear rubble and misses")
	}
}
