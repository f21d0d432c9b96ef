package rules

// Event is a fact produced by the world while it advances. Events carry
// copies of world data so they stay valid after the world lock is released.
type Event interface {
	event()
}

// SnakeMoved is emitted for every snake that survived a tick. Steered is set
// when the heading or boost changed since the previous tick.
type SnakeMoved struct {
	Snake   Snake
	Steered bool
}

// FoodEaten is emitted when a pellet is consumed.
type FoodEaten struct {
	Food    Food
	SnakeID string
}

// SnakeGrew is emitted after a pickup raised a snake's length and score.
type SnakeGrew struct {
	ID     string
	Length int
	Score  int
}

// SnakeShrank is emitted when boosting cost a snake length.
type SnakeShrank struct {
	ID     string
	Length int
	Score  int
}

// SnakeDied is emitted once per dead snake per tick.
type SnakeDied struct {
	Snake    Snake
	Cause    string
	KilledBy string
}

// FoodSpawned is emitted for a batch of new pellets.
type FoodSpawned struct {
	Foods []Food
}

// LeaderboardChanged is emitted when the ranked projection differs from the
// previous tick.
type LeaderboardChanged struct {
	Entries []LeaderboardEntry
}

func (SnakeMoved) event()         {}
func (FoodEaten) event()          {}
func (SnakeGrew) event()          {}
func (SnakeShrank) event()        {}
func (SnakeDied) event()          {}
func (FoodSpawned) event()        {}
func (LeaderboardChanged) event() {}
