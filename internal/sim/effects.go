package sim

import (
	"math"
	"math/rand"
)

// Debris spawn ranges.
const (
	debrisSpread    = 100.0 // px/s, velocity range per axis
	debrisLift      = 50.0  // px/s upward bias
	debrisMinLife   = 1.0   // seconds
	debrisLifeRange = 1.0
)

// Debris is a short-lived particle in screen space.
type Debris struct {
	Pos  Point
	Vel  Vec2
	Life float64 // seconds remaining
}

// Opacity fades linearly to zero over the last second of life.
func (d *Debris) Opacity() float64 {
	return math.Max(0, math.Min(1, d.Life))
}

// Rubble is a permanent mark left where a building stood.
type Rubble struct {
	Pos Point
}

// Effects owns the debris and rubble pools.
type Effects struct {
	Debris  *Pool[Debris]
	Rubble  *Pool[Rubble]
	gravity float64
}

// NewEffects allocates both pools at their configured capacities.
func NewEffects(t Tuning) *Effects {
	return &Effects{
		Debris:  NewPool[Debris](t.DebrisCapacity),
		Rubble:  NewPool[Rubble](t.RubbleCapacity),
		gravity: t.Gravity,
	}
}

// Reset deactivates every effect.
func (e *Effects) Reset() {
	e.Debris.Reset()
	e.Rubble.Reset()
}

// PlaceRubble marks at. Returns false if the rubble pool is full.
func (e *Effects) PlaceRubble(at Point) bool {
	_, r, ok := e.Rubble.Acquire()
	if !ok {
		return false
	}
	r.Pos = at
	return true
}

// SpawnDebris launches one particle from at. Returns false if the debris
// pool is full.
func (e *Effects) SpawnDebris(at Point, rng *rand.Rand) bool {
	_, d, ok := e.Debris.Acquire()
	if !ok {
		return false
	}
	d.Pos = at
	d.Vel = Vec2{
		X: (rng.Float64() - 0.5) * debrisSpread,
		Y: (rng.Float64()-0.5)*debrisSpread - debrisLift,
	}
	d.Life = debrisMinLife + rng.Float64()*debrisLifeRange
	return true
}

// Update ages every active particle, releasing the expired ones, and
// integrates the rest under gravity.
func (e *Effects) Update(dt float64) {
	e.Debris.Each(func(idx int, d *Debris) {
		d.Life -= dt
		if d.Life <= 0 {
			e.Debris.Release(idx)
			return
		}
		d.Pos.X += d.Vel.X * dt
		d.Pos.Y += d.Vel.Y * dt
		d.Vel.Y += e.gravity * dt
	})
}
