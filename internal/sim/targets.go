package sim

import "math/rand"

// Size tiers.
const (
	minTier = 1
	maxTier = 3
)

// Target is a destructible building.
type Target struct {
	Pos  LatLng
	Size int // 1..3
}

// Points returns the score for destroying t.
func (t Target) Points() int {
	return t.Size * pointsPerTier
}

// DebrisCount returns how many particles t throws when destroyed.
func (t Target) DebrisCount() int {
	return debrisBase + debrisPerTier*t.Size
}

// ScatterTargets lays a grid of buildings over b with the given spacing in
// degrees. Each building is nudged by up to jitter degrees on both axes
// and gets a uniformly random size tier.
func ScatterTargets(b Bounds, step, jitter float64, rng *rand.Rand) []Target {
	if step <= 0 {
		return nil
	}
	var out []Target
	for i := 0; ; i++ {
		lat := b.SW.Lat + float64(i)*step
		if lat >= b.NE.Lat {
			break
		}
		for j := 0; ; j++ {
			lng := b.SW.Lng + float64(j)*step
			if lng >= b.NE.Lng {
				break
			}
			out = append(out, Target{
				Pos: LatLng{
					Lat: lat + rng.Float64()*jitter,
					Lng: lng + rng.Float64()*jitter,
				},
				Size: minTier + rng.Intn(maxTier-minTier+1),
			})
		}
	}
	return out
}
