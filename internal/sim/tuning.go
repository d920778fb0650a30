package sim

// Tuning holds the gameplay constants. DefaultTuning matches the arcade
// feel; config files may override individual values.
type Tuning struct {
	Acceleration      float64 // px/s²
	MaxSpeed          float64 // px/s
	Friction          float64 // velocity factor retained per second
	DestructionRadius float64 // px
	Gravity           float64 // debris px/s², positive = down

	DebrisCapacity int
	RubbleCapacity int

	AgentSize float64 // px

	// Target scatter grid, degrees.
	GridStep float64
	Jitter   float64
}

// DefaultTuning returns the standard gameplay constants.
func DefaultTuning() Tuning {
	return Tuning{
		Acceleration:      200,
		MaxSpeed:          150,
		Friction:          0.9,
		DestructionRadius: 30,
		Gravity:           200,
		DebrisCapacity:    30,
		RubbleCapacity:    50,
		AgentSize:         60,
		GridStep:          0.0002,
		Jitter:            0.00005,
	}
}

// Points awarded per size tier.
const pointsPerTier = 100

// Debris spawned per destruction is debrisBase + debrisPerTier*size.
const (
	debrisBase    = 5
	debrisPerTier = 2
)

// A session ends once destroyed/total reaches endNumer/endDenom (80%).
const (
	endNumer = 4
	endDenom = 5
)
