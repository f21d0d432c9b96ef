package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextColor(t *testing.T) {
	resetPalette([]RGB{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}})
	defer resetPalette(defaultColors)

	// test each color
	require.Equal(t, RGB{255, 0, 0}, nextColor())
	require.Equal(t, RGB{0, 255, 0}, nextColor())
	require.Equal(t, RGB{0, 0, 255}, nextColor())

	// test wrap around
	require.Equal(t, RGB{255, 0, 0}, nextColor())
}

func TestRGBJSON(t *testing.T) {
	data, err := json.Marshal(RGB{255, 165, 0})
	require.NoError(t, err)
	require.Equal(t, "[255,165,0]", string(data))

	var c RGB
	require.NoError(t, json.Unmarshal([]byte("[1,2,3]"), &c))
	require.Equal(t, RGB{1, 2, 3}, c)

	require.Error(t, json.Unmarshal([]byte("[1,2,300]"), &c))
	require.Error(t, json.Unmarshal([]byte(`"red"`), &c))
}

func TestRandomFoodColor(t *testing.T) {
	for i := 0; i < 20; i++ {
		require.Contains(t, foodColors, randomFoodColor())
	}
}

func resetPalette(colors []RGB) {
	colorMutex.Lock()
	defer colorMutex.Unlock()

	palette = colors
	colorIndex = 0
}
