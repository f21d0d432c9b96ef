package rules

import "github.com/pkg/errors"

// ErrDuplicateID is returned when a snake is added under an id that is
// already registered. The new snake still replaces the old one.
var ErrDuplicateID = errors.New("rules: duplicate snake id")
