// Package config resolves runtime settings from defaults, environment and flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/cascade"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/drop"
)

// Environment variable names
const (
	EnvSize         = "DROP_PUZZLE_SIZE"
	EnvMode         = "DROP_PUZZLE_MODE"
	EnvSkyfall      = "DROP_PUZZLE_SKYFALL"
	EnvFadeMS       = "DROP_PUZZLE_FADE_MS"
	EnvFallMS       = "DROP_PUZZLE_FALL_MS"
	EnvListen       = "DROP_PUZZLE_LISTEN"
	EnvAudioEnabled = "DROP_PUZZLE_AUDIO_ENABLED"
	EnvMasterVolume = "DROP_PUZZLE_MASTER_VOLUME"
	EnvDisabled     = "DROP_PUZZLE_DISABLED"
	EnvKeymap       = "DROP_PUZZLE_KEYMAP"
)

// Config is the full runtime configuration
type Config struct {
	BoardSize    int
	Mode         string
	Skyfall      bool
	Disabled     []drop.ID
	FadeDuration time.Duration
	FallDuration time.Duration
	TickInterval time.Duration

	// Listen is the websocket address; empty disables the remote session
	Listen string

	AudioEnabled bool
	MasterVolume float64

	// Keymap is an optional JSON key binding file merged over the defaults
	Keymap string

	Debug bool
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		BoardSize:    constants.DefaultBoardSize,
		Mode:         board.ModePuzzle.String(),
		Skyfall:      true,
		FadeDuration: constants.FadeDuration,
		FallDuration: constants.FallDuration,
		TickInterval: constants.GameUpdateInterval,
		AudioEnabled: true,
		MasterVolume: 0.5,
	}
}

// LoadFromEnv overlays environment variables on the defaults
// Malformed numeric and boolean values are ignored; Validate catches the rest
func LoadFromEnv() *Config {
	return loadFromEnv(os.Getenv)
}

func loadFromEnv(getenv func(string) string) *Config {
	cfg := Default()

	if v := getenv(EnvSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BoardSize = n
		}
	}

	if v := getenv(EnvMode); v != "" {
		cfg.Mode = v
	}

	if v := getenv(EnvSkyfall); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Skyfall = b
		}
	}

	if v := getenv(EnvFadeMS); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.FadeDuration = time.Duration(ms) * time.Millisecond
		}
	}

	if v := getenv(EnvFallMS); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.FallDuration = time.Duration(ms) * time.Millisecond
		}
	}

	if v := getenv(EnvListen); v != "" {
		cfg.Listen = v
	}

	if v := getenv(EnvKeymap); v != "" {
		cfg.Keymap = v
	}

	if v := getenv(EnvAudioEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AudioEnabled = b
		}
	}

	// Master volume is 0-100, stored as 0.0-1.0
	if v := getenv(EnvMasterVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MasterVolume = min(max(float64(n)/100.0, 0), 1)
		}
	}

	// Disabled ids as a JSON array of numbers or names: [4, "poison"]
	if v := getenv(EnvDisabled); v != "" {
		if ids, err := ParseDisabled(v); err == nil {
			cfg.Disabled = ids
		}
	}

	return cfg
}

// ParseDisabled decodes a JSON array of drop ids or palette names
func ParseDisabled(s string) ([]drop.ID, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("disabled ids: %w", err)
	}

	ids := make([]drop.ID, 0, len(raw))
	for _, r := range raw {
		var n int
		if err := json.Unmarshal(r, &n); err == nil {
			ids = append(ids, drop.ID(n))
			continue
		}
		var name string
		if err := json.Unmarshal(r, &name); err != nil {
			return nil, fmt.Errorf("disabled ids: %s is neither id nor name", r)
		}
		id, ok := drop.ParseID(name)
		if !ok {
			return nil, fmt.Errorf("disabled ids: unknown drop %q", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error

	if c.BoardSize < constants.MinBoardSize || c.BoardSize > constants.MaxBoardSize {
		errs = append(errs, fmt.Errorf("board size %d outside %d..%d", c.BoardSize, constants.MinBoardSize, constants.MaxBoardSize))
	}
	if _, err := board.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	for _, id := range c.Disabled {
		if id == drop.Empty || !id.Valid() {
			errs = append(errs, fmt.Errorf("disabled id %d is not a drop", int(id)))
		}
	}
	if c.FadeDuration < 0 || c.FallDuration < 0 {
		errs = append(errs, errors.New("animation durations must not be negative"))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval %v must be positive", c.TickInterval))
	}
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		errs = append(errs, fmt.Errorf("master volume %.2f outside 0..1", c.MasterVolume))
	}
	if c.Listen != "" && !strings.Contains(c.Listen, ":") {
		errs = append(errs, fmt.Errorf("listen address %q needs host:port", c.Listen))
	}

	return errors.Join(errs...)
}

// BoardConfig derives the board setup; call after Validate
func (c *Config) BoardConfig() board.Config {
	mode, _ := board.ParseMode(c.Mode)
	return board.Config{
		Size:     c.BoardSize,
		Mode:     mode,
		Skyfall:  c.Skyfall,
		Disabled: append([]drop.ID(nil), c.Disabled...),
		Cascade: cascade.Config{
			FadeDuration: c.FadeDuration,
			FallDuration: c.FallDuration,
		},
	}
}
