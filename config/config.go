// Package config holds the environment tunables of the arena server.
package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of server performance. Command line flags default to them.
var (
	TickInterval  = getEnvDuration("TICK_MS", 16*time.Millisecond)
	ResyncEvery   = getEnvInt("RESYNC_TICKS", 30)
	BotInterval   = getEnvDuration("BOT_MS", 200*time.Millisecond)
	BotCount      = getEnvInt("BOT_COUNT", 10)
	WorldWidth    = getEnvFloat("WORLD_WIDTH", 5000)
	WorldHeight   = getEnvFloat("WORLD_HEIGHT", 5000)
	InboundRate   = rate.Limit(getEnvInt("INBOUND_RPS", 60))
	InboundBurst  = getEnvInt("INBOUND_BURST", 20)
	OutboundQueue = getEnvInt("OUTBOUND_QUEUE", 256)
	ReadLimit     = int64(getEnvInt("READ_LIMIT", 4096))
	PingInterval  = getEnvDuration("PING_MS", 30*time.Second)
	PongWait      = getEnvDuration("PONG_MS", 60*time.Second)
	WriteWait     = getEnvDuration("WRITE_MS", 10*time.Second)
	JoinTimeout   = getEnvDuration("JOIN_TIMEOUT_MS", 0)
	MaxOpenConns  = getEnvInt("MAX_OPEN_CONNS", 20)
	MaxIdleConns  = getEnvInt("MAX_IDLE_CONNS", 20)
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvFloat(varName string, defaults float64) float64 {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaults
	}
	return f
}

// getEnvDuration reads a whole number of milliseconds.
func getEnvDuration(varName string, defaults time.Duration) time.Duration {
	ms := getEnvInt(varName, -1)
	if ms < 0 {
		return defaults
	}
	return time.Duration(ms) * time.Millisecond
}
