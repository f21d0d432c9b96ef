// Package protocol defines the JSON envelope spoken over the websocket and
// maps world events onto server packets.
package protocol

import (
	"encoding/json"

	"github.com/battlesnakeio/arena/rules"
)

// Client message tags.
const (
	JoinGame  = "JoinGame"
	LeaveGame = "LeaveGame"
	MoveSnake = "MoveSnake"
	Pong      = "Pong"
	FoodEat   = "FoodEat"
)

// Server message tags.
const (
	PlayerInit           = "PlayerInit"
	PlayerJoined         = "PlayerJoined"
	PlayerLeft           = "PlayerLeft"
	SnakeDied            = "SnakeDied"
	UpdateSnake          = "UpdateSnake"
	IncreasePlayerLength = "IncreasePlayerLength"
	DecreasePlayerLength = "DecreasePlayerLength"
	UpdateLeaderboard    = "UpdateLeaderboard"
	UpdateMinimap        = "UpdateMinimap"
	FoodSpawned          = "FoodSpawned"
	FoodEaten            = "FoodEaten"
)

var clientTags = map[string]bool{
	JoinGame:  true,
	LeaveGame: true,
	MoveSnake: true,
	Pong:      true,
	FoodEat:   true,
}

// ClientPacket is an inbound envelope. Data is decoded once the tag is
// known.
type ClientPacket struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ServerPacket is an outbound envelope.
type ServerPacket struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Join is the JoinGame payload.
type Join struct {
	Name string `json:"name"`
}

// Move is the MoveSnake payload. Boost is nil when the client did not say.
type Move struct {
	Direction float64 `json:"direction"`
	Boost     *bool   `json:"boost,omitempty"`
}

// PlayerLeftData is sent when a player's snake is removed on disconnect.
type PlayerLeftData struct {
	ID string `json:"id"`
}

// SnakeDiedData announces a death.
type SnakeDiedData struct {
	ID       string `json:"id"`
	Cause    string `json:"cause"`
	KilledBy string `json:"killedBy,omitempty"`
}

// FoodEatenData announces a consumed pellet.
type FoodEatenData struct {
	ID       uint64      `json:"id"`
	Position rules.Point `json:"position"`
	SnakeID  string      `json:"snakeId"`
}

// FoodSpawnedData announces a batch of pellets. Color is set when every
// pellet in the batch shares it.
type FoodSpawnedData struct {
	Positions []rules.Point `json:"positions"`
	Foods     []rules.Food  `json:"foods"`
	Color     *rules.RGB    `json:"color,omitempty"`
}

// LengthData carries IncreasePlayerLength and DecreasePlayerLength.
type LengthData struct {
	ID     string `json:"id"`
	Length int    `json:"length"`
	Score  int    `json:"score"`
}

// LeaderboardData carries UpdateLeaderboard.
type LeaderboardData struct {
	Entries []rules.LeaderboardEntry `json:"entries"`
}

// MinimapSnake is one dot on the minimap.
type MinimapSnake struct {
	ID     string    `json:"id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Radius float64   `json:"radius"`
	Color  rules.RGB `json:"color"`
}

// MinimapData carries UpdateMinimap.
type MinimapData struct {
	Snakes []MinimapSnake `json:"snakes"`
}
