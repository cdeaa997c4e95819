package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setenv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoadDefaultsWithoutEnvFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 40, c.GridWidth)
	assert.Equal(t, 22, c.GridHeight)
	assert.Equal(t, 10, c.CenterX)
	assert.Equal(t, 11, c.CenterY)
	assert.Equal(t, 100*time.Millisecond, c.ShrinkInterval)
	assert.Equal(t, time.Second, c.EndDelay)
	assert.InDelta(t, 0.20, c.Deadzone, 1e-9)
	assert.Zero(t, c.Bots, "every slot belongs to a controller unless bots are asked for")
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "arena.env")
	require.NoError(t, ioutil.WriteFile(f, []byte("ARENA_PLAYERS=2\nARENA_SHRINK_INTERVAL=250ms\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("ARENA_PLAYERS")
		os.Unsetenv("ARENA_SHRINK_INTERVAL")
	})

	c, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Players)
	assert.Zero(t, c.Bots)
	assert.Equal(t, 250*time.Millisecond, c.ShrinkInterval)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setenv(t, "ARENA_PLAYERS", "five")
	_, err := Load(filepath.Join(t.TempDir(), "none"))
	assert.Error(t, err)

	setenv(t, "ARENA_PLAYERS", "6")
	_, err = Load(filepath.Join(t.TempDir(), "none"))
	assert.Error(t, err)
}

func TestValidateCenterOutsideGrid(t *testing.T) {
	c := Default()
	c.CenterX = c.GridWidth
	assert.Error(t, c.Validate())
}

func TestFrameTime(t *testing.T) {
	c := Default()
	assert.Equal(t, time.Second/60, c.FrameTime())
}
