package network

import (
	"time"

	"github.com/lixenwraith/drop-puzzle/constants"
)

// Config holds remote session configuration
type Config struct {
	// Address to bind; empty disables the server
	Address string

	// Connection limits
	MaxPeers       int
	MaxMessageSize int64

	// Timing
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	ShutdownTimeout   time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
}

// DefaultConfig returns production-safe defaults with the server disabled
func DefaultConfig() *Config {
	return &Config{
		Address:           "",
		MaxPeers:          16,
		MaxMessageSize:    4096,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      5 * time.Second,
		HeartbeatInterval: 25 * time.Second, // Must stay below ReadTimeout
		ShutdownTimeout:   2 * time.Second,
		ReadBufferSize:    1024,
		WriteBufferSize:   4096,
		SendQueueSize:     constants.ClientSendQueueSize,
	}
}

// DebugConfig returns defaults bound to addr
func DebugConfig(addr string) *Config {
	cfg := DefaultConfig()
	cfg.Address = addr
	return cfg
}
