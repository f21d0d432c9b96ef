package rules

// Food is a single pellet.
type Food struct {
	ID       uint64 `json:"id"`
	Position Point  `json:"position"`
	Value    int    `json:"value"`
	Color    RGB    `json:"color"`
}
