package rules

import (
	"encoding/json"
	"math/rand"
	"sync"

	"github.com/pkg/errors"
)

// RGB is a color triple, encoded on the wire as [r, g, b].
type RGB [3]uint8

// MarshalJSON encodes the color as a number array rather than base64.
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{int(c[0]), int(c[1]), int(c[2])})
}

// UnmarshalJSON decodes a [r, g, b] array.
func (c *RGB) UnmarshalJSON(data []byte) error {
	var v [3]int
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "rules: invalid color")
	}
	for i := range v {
		if v[i] < 0 || v[i] > 255 {
			return errors.Errorf("rules: color channel %d out of range", v[i])
		}
		c[i] = uint8(v[i])
	}
	return nil
}

var defaultColors = []RGB{
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
	{255, 255, 0},
	{0, 255, 255},
	{255, 0, 255},
	{255, 165, 0},
	{128, 0, 128},
	{255, 192, 203},
	{165, 42, 42},
	{0, 0, 0},
	{255, 255, 255},
	{128, 128, 128},
}

var foodColors = []RGB{
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
	{255, 255, 0},
	{255, 192, 203},
}

var palette = defaultColors

var colorIndex = 0

var colorMutex = &sync.Mutex{}

func nextColorIndex() int {
	colorMutex.Lock()
	defer colorMutex.Unlock()

	current := colorIndex
	colorIndex = (colorIndex + 1) % len(palette)
	return current
}

// nextColor hands out snake colors round-robin so neighbours rarely match.
func nextColor() RGB {
	return palette[nextColorIndex()]
}

func randomFoodColor() RGB {
	return foodColors[rand.Intn(len(foodColors))]
}
