package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/drop"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, constants.DefaultBoardSize, cfg.BoardSize)
	assert.Equal(t, "puzzle", cfg.Mode)
	assert.Empty(t, cfg.Listen)
}

func TestLoadFromEnv(t *testing.T) {
	cfg := loadFromEnv(envOf(map[string]string{
		EnvSize:         "7",
		EnvMode:         "palette",
		EnvSkyfall:      "false",
		EnvFadeMS:       "100",
		EnvFallMS:       "80",
		EnvListen:       "127.0.0.1:9000",
		EnvAudioEnabled: "0",
		EnvMasterVolume: "150",
		EnvDisabled:     `[4, "poison"]`,
		EnvKeymap:       "keys.json",
	}))

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 7, cfg.BoardSize)
	assert.Equal(t, "palette", cfg.Mode)
	assert.False(t, cfg.Skyfall)
	assert.Equal(t, 100*time.Millisecond, cfg.FadeDuration)
	assert.Equal(t, 80*time.Millisecond, cfg.FallDuration)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.False(t, cfg.AudioEnabled)
	assert.Equal(t, 1.0, cfg.MasterVolume)
	assert.Equal(t, []drop.ID{drop.Dark, drop.Poison}, cfg.Disabled)
	assert.Equal(t, "keys.json", cfg.Keymap)

	bc := cfg.BoardConfig()
	assert.Equal(t, board.ModePalette, bc.Mode)
	assert.Equal(t, 100*time.Millisecond, bc.Cascade.FadeDuration)
}

func TestMalformedEnvIgnored(t *testing.T) {
	cfg := loadFromEnv(envOf(map[string]string{
		EnvSize:     "big",
		EnvSkyfall:  "maybe",
		EnvDisabled: "not json",
	}))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, constants.DefaultBoardSize, cfg.BoardSize)
	assert.True(t, cfg.Skyfall)
	assert.Empty(t, cfg.Disabled)
}

func TestValidateRejects(t *testing.T) {
	cfg := Default()
	cfg.BoardSize = 1
	cfg.Mode = "arcade"
	cfg.Disabled = []drop.ID{drop.Empty, 42}
	cfg.Listen = "nowhere"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "board size 1")
	assert.Contains(t, msg, `unknown board mode "arcade"`)
	assert.Contains(t, msg, "disabled id -1")
	assert.Contains(t, msg, "disabled id 42")
	assert.Contains(t, msg, "host:port")
}

func TestParseDisabled(t *testing.T) {
	ids, err := ParseDisabled(`["fire", 1]`)
	require.NoError(t, err)
	assert.Equal(t, []drop.ID{drop.Fire, drop.Water}, ids)

	_, err = ParseDisabled(`["lava"]`)
	assert.Error(t, err)
	_, err = ParseDisabled(`[true]`)
	assert.Error(t, err)
}
