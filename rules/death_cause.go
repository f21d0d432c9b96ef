package rules

const (
	// DeathCauseSnakeCollision is the death reason when a head runs into
	// another snake's body
	DeathCauseSnakeCollision = "snake-collision"
	// DeathCauseHeadToHeadCollision is when a head runs into another snake's
	// head
	DeathCauseHeadToHeadCollision = "head-collision"
)
