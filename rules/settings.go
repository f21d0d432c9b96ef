package rules

// Settings holds the gameplay tuning for a world. The zero value is not
// useful, start from DefaultSettings.
type Settings struct {
	// Arena size, positions wrap around at the edges.
	Width  float64
	Height float64

	InitialFood      int
	MinFood          int
	FoodSpawnPerTick int
	FoodValue        int
	FoodRadius       float64

	DefaultLength int
	// MaxLength caps growth, zero leaves it unbounded.
	MaxLength int

	// speed = max(MinSpeed, BaseSpeed - SpeedDecay*length)
	BaseSpeed  float64
	SpeedDecay float64
	MinSpeed   float64

	BoostMultiplier float64
	// BoostCostTicks is how many boosted ticks cost one length point.
	BoostCostTicks int

	// radius = min(MaxRadius, MinRadius + (score/StageThreshold)*GrowthPerStage)
	MinRadius      float64
	MaxRadius      float64
	StageThreshold int
	GrowthPerStage float64

	CollisionThreshold float64
	LeaderboardSize    int
}

// DefaultSettings returns the tuning the arena ships with.
func DefaultSettings() Settings {
	return Settings{
		Width:              5000,
		Height:             5000,
		InitialFood:        50,
		MinFood:            50,
		FoodSpawnPerTick:   5,
		FoodValue:          1,
		FoodRadius:         5,
		DefaultLength:      10,
		MaxLength:          100,
		BaseSpeed:          2.0,
		SpeedDecay:         0.01,
		MinSpeed:           0.5,
		BoostMultiplier:    1.5,
		BoostCostTicks:     20,
		MinRadius:          5,
		MaxRadius:          20,
		StageThreshold:     10,
		GrowthPerStage:     1,
		CollisionThreshold: 10,
		LeaderboardSize:    10,
	}
}

func (s Settings) speedFor(length int, boosting bool) float64 {
	speed := s.BaseSpeed - s.SpeedDecay*float64(length)
	if speed < s.MinSpeed {
		speed = s.MinSpeed
	}
	if boosting && s.BoostMultiplier > 0 {
		speed *= s.BoostMultiplier
	}
	return speed
}

// radiusFor grows the visual radius in discrete stages of score.
func (s Settings) radiusFor(score int) float64 {
	stage := 0
	if s.StageThreshold > 0 {
		stage = score / s.StageThreshold
	}
	r := s.MinRadius + float64(stage)*s.GrowthPerStage
	if s.MaxRadius > 0 && r > s.MaxRadius {
		r = s.MaxRadius
	}
	return r
}
