package rules

// SnakeState is the part of a snake the collision pass needs.
type SnakeState struct {
	ID     string
	Head   Point
	Radius float64
	Body   []Point
}

// Pickup assigns a pellet to the snake that reached it first.
type Pickup struct {
	SnakeID string
	FoodID  uint64
}

// Death records a snake that ran into another snake.
type Death struct {
	SnakeID  string
	Cause    string
	KilledBy string
}

// Decisions is the outcome of one collision pass. Nothing is applied yet.
type Decisions struct {
	Pickups []Pickup
	Deaths  []Death
}

// ResolveCollisions checks every head in snapshot against the other snakes
// and against foods. snapshot and foods are read only; the caller orders them
// so that ties resolve the same way on every run.
func ResolveCollisions(snapshot []SnakeState, foods []Food, settings Settings) Decisions {
	var d Decisions
	dead := map[string]bool{}

	for _, s := range snapshot {
		if dead[s.ID] {
			continue
		}
		if death, ok := checkSnakeCollision(s, snapshot, settings); ok {
			dead[s.ID] = true
			d.Deaths = append(d.Deaths, death)
		}
	}

	claimed := map[uint64]bool{}
	for _, s := range snapshot {
		if dead[s.ID] {
			continue
		}
		reach := s.Radius + settings.FoodRadius
		for _, f := range foods {
			if claimed[f.ID] {
				continue
			}
			if s.Head.WrapDist(f.Position, settings.Width, settings.Height) < reach {
				claimed[f.ID] = true
				d.Pickups = append(d.Pickups, Pickup{SnakeID: s.ID, FoodID: f.ID})
			}
		}
	}
	return d
}

func checkSnakeCollision(s SnakeState, snapshot []SnakeState, settings Settings) (Death, bool) {
	for _, other := range snapshot {
		if other.ID == s.ID {
			continue
		}
		for i, seg := range other.Body {
			if s.Head.WrapDist(seg, settings.Width, settings.Height) >= settings.CollisionThreshold {
				continue
			}
			cause := DeathCauseSnakeCollision
			if i == 0 {
				cause = DeathCauseHeadToHeadCollision
			}
			return Death{SnakeID: s.ID, Cause: cause, KilledBy: other.ID}, true
		}
	}
	return Death{}, false
}
