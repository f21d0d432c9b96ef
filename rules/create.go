package rules

import (
	uuid "github.com/satori/go.uuid"
)

// newSnakeID returns a fresh id. Ids are never reused, a respawned player
// gets a new one.
func newSnakeID() string {
	return uuid.NewV4().String()
}
