package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable of a play session. Zero values are never used directly,
// Load and Default always fill them in.
type Config struct {
	Players int
	Seed    int64
	MapDir  string

	GridWidth  int
	GridHeight int
	CenterX    int
	CenterY    int

	ShrinkInterval time.Duration
	EndDelay       time.Duration
	TPS            int
	Deadzone       float64

	DebugAddr string
	Bots      int
}

func Default() *Config {
	return &Config{
		Players:        4,
		MapDir:         "data/maps",
		GridWidth:      40,
		GridHeight:     22,
		CenterX:        10,
		CenterY:        11,
		ShrinkInterval: 100 * time.Millisecond,
		EndDelay:       time.Second,
		TPS:            60,
		Deadzone:       0.20,
		Bots:           0,
	}
}

// Load reads the optional env files (".env" when none are given) and then the ARENA_*
// variables on top of Default.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	c := Default()
	var err error
	if c.Players, err = envInt("ARENA_PLAYERS", c.Players); err != nil {
		return nil, err
	}
	seed, err := envInt("ARENA_SEED", 0)
	if err != nil {
		return nil, err
	}
	c.Seed = int64(seed)
	if v, ok := os.LookupEnv("ARENA_MAP_DIR"); ok {
		c.MapDir = v
	}
	if c.GridWidth, err = envInt("ARENA_GRID_WIDTH", c.GridWidth); err != nil {
		return nil, err
	}
	if c.GridHeight, err = envInt("ARENA_GRID_HEIGHT", c.GridHeight); err != nil {
		return nil, err
	}
	if c.CenterX, err = envInt("ARENA_CENTER_X", c.CenterX); err != nil {
		return nil, err
	}
	if c.CenterY, err = envInt("ARENA_CENTER_Y", c.CenterY); err != nil {
		return nil, err
	}
	if c.ShrinkInterval, err = envDuration("ARENA_SHRINK_INTERVAL", c.ShrinkInterval); err != nil {
		return nil, err
	}
	if c.EndDelay, err = envDuration("ARENA_END_DELAY", c.EndDelay); err != nil {
		return nil, err
	}
	if c.TPS, err = envInt("ARENA_TPS", c.TPS); err != nil {
		return nil, err
	}
	if c.Deadzone, err = envFloat("ARENA_DEADZONE", c.Deadzone); err != nil {
		return nil, err
	}
	c.DebugAddr = os.Getenv("ARENA_DEBUG_ADDR")
	if c.Bots, err = envInt("ARENA_BOTS", c.Bots); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Players < 1 || c.Players > 4:
		return fmt.Errorf("players must be within 1..4, got %d", c.Players)
	case c.Bots < 0 || c.Bots > c.Players:
		return fmt.Errorf("bots must be within 0..%d, got %d", c.Players, c.Bots)
	case c.GridWidth < 1 || c.GridHeight < 1:
		return fmt.Errorf("grid %dx%d is empty", c.GridWidth, c.GridHeight)
	case c.CenterX < 0 || c.CenterX >= c.GridWidth || c.CenterY < 0 || c.CenterY >= c.GridHeight:
		return fmt.Errorf("center %d,%d outside the %dx%d grid", c.CenterX, c.CenterY, c.GridWidth, c.GridHeight)
	case c.ShrinkInterval <= 0 || c.EndDelay < 0:
		return fmt.Errorf("shrink interval %v and end delay %v must be positive", c.ShrinkInterval, c.EndDelay)
	case c.TPS < 1:
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	case c.Deadzone < 0 || c.Deadzone >= 1:
		return fmt.Errorf("deadzone must be within [0,1), got %v", c.Deadzone)
	}
	return nil
}

// FrameTime is the game time covered by one update.
func (c *Config) FrameTime() time.Duration {
	return time.Second / time.Duration(c.TPS)
}

func envInt(name string, def int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return i, nil
}

func envFloat(name string, def float64) (float64, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

func envDuration(name string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}
