package rules

// Snake is one player or bot controlled creature.
type Snake struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Position  Point   `json:"position"`
	Direction float64 `json:"direction"`
	Speed     float64 `json:"speed"`
	Body      []Point `json:"body"`
	Length    int     `json:"length"`
	IsDead    bool    `json:"isDead"`
	Score     int     `json:"score"`
	IsBot     bool    `json:"isBot"`
	Color     RGB     `json:"color"`
	Radius    float64 `json:"radius"`
	Boosting  bool    `json:"boosting"`

	boostTicks int
	steered    bool
}

// NewSnake creates a snake at pos with the default length for settings.
func NewSnake(id, name string, color RGB, isBot bool, pos Point, settings Settings) *Snake {
	length := settings.DefaultLength
	if length < 1 {
		length = 1
	}
	return &Snake{
		ID:       id,
		Name:     name,
		Position: pos,
		Speed:    settings.speedFor(length, false),
		Body:     []Point{pos},
		Length:   length,
		IsBot:    isBot,
		Color:    color,
		Radius:   settings.radiusFor(0),
	}
}

// Head returns the first point in the body
func (s *Snake) Head() Point {
	if len(s.Body) == 0 {
		return s.Position
	}
	return s.Body[0]
}

// Tail returns the last point in the body
func (s *Snake) Tail() Point {
	if len(s.Body) == 0 {
		return s.Position
	}
	return s.Body[len(s.Body)-1]
}

// Move advances the head dist units along the current direction, pushes it
// onto the body and trims the body back to Length.
func (s *Snake) Move(dist, width, height float64) {
	next := s.Head().Step(s.Direction, dist).Wrap(width, height)
	s.Body = append([]Point{next}, s.Body...)
	s.Position = next
	s.truncate()
}

// Grow adds n to the target length, never past max when max is positive.
// The body catches up as the snake moves.
func (s *Snake) Grow(n, max int) {
	s.Length += n
	if max > 0 && s.Length > max {
		s.Length = max
	}
}

// Shrink removes n from the length, never below min or 1.
func (s *Snake) Shrink(n, min int) bool {
	if min < 1 {
		min = 1
	}
	if s.Length-n < min {
		return false
	}
	s.Length -= n
	s.truncate()
	return true
}

func (s *Snake) truncate() {
	if s.Length < 1 {
		s.Length = 1
	}
	if len(s.Body) > s.Length {
		s.Body = s.Body[:s.Length]
	}
}

// Clone returns a deep copy that is safe to hand out of the world lock.
func (s *Snake) Clone() Snake {
	c := *s
	c.Body = make([]Point, len(s.Body))
	copy(c.Body, s.Body)
	return c
}
