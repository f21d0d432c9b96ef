package main

import (
	"math/rand"
	"time"

	"github.com/battlesnakeio/arena/cmd/arena/commands"
)

func main() {
	rand.Seed(time.Now().UnixNano())
	commands.Execute()
}
