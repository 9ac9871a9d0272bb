package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"seabattle/internal/ai"
	"seabattle/internal/game"
)

type Config struct {
	Seed              int64  // 0 picks a time based seed
	PlacementAttempts int    // samples per ship before a placement run fails
	PlacementRuns     int    // fresh placement runs before giving up
	SearchPattern     string // expr source, empty for uniform search
	LogLevel          string
	KeysDir           string
}

func Default() Config {
	return Config{
		PlacementAttempts: game.DefaultPlacementAttempts,
		PlacementRuns:     3,
		LogLevel:          "info",
		KeysDir:           "./keys",
	}
}

func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 = time based)")
	fs.IntVar(&c.PlacementAttempts, "attempts", c.PlacementAttempts, "placement samples per ship")
	fs.IntVar(&c.PlacementRuns, "runs", c.PlacementRuns, "full placement restarts allowed")
	fs.StringVar(&c.SearchPattern, "pattern", c.SearchPattern, "search preference expression, e.g. "+fmt.Sprintf("%q", ai.Checkerboard))
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.KeysDir, "keys", c.KeysDir, "proving/verifying keys directory")
}

func (c Config) Validate() error {
	var errs []error
	if c.PlacementAttempts < 1 {
		errs = append(errs, errors.New("attempts must be positive"))
	}
	if c.PlacementRuns < 1 {
		errs = append(errs, errors.New("runs must be positive"))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if c.SearchPattern != "" {
		if _, err := ai.CompileSearchPattern(c.SearchPattern); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Rand returns the random source for one run.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Pattern compiles SearchPattern, returning nil when it is empty.
func (c Config) Pattern() (*ai.SearchPattern, error) {
	if c.SearchPattern == "" {
		return nil, nil
	}
	return ai.CompileSearchPattern(c.SearchPattern)
}

// EnvPrefix namespaces the keys LoadEnv understands, e.g. SEABATTLE_SEED.
const EnvPrefix = "SEABATTLE_"

// LoadEnv overlays values from a dotenv file onto c. A missing file is not
// an error. Call it before RegisterFlags so flags still win.
func (c *Config) LoadEnv(path string) error {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var errs []error
	atoi := func(key string, dst *int) {
		if v, ok := env[EnvPrefix+key]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	if v, ok := env[EnvPrefix+"SEED"]; ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			c.Seed = n
		}
	}
	atoi("ATTEMPTS", &c.PlacementAttempts)
	atoi("RUNS", &c.PlacementRuns)
	if v, ok := env[EnvPrefix+"PATTERN"]; ok {
		c.SearchPattern = v
	}
	if v, ok := env[EnvPrefix+"LOG_LEVEL"]; ok {
		c.LogLevel = v
	}
	if v, ok := env[EnvPrefix+"KEYS"]; ok {
		c.KeysDir = v
	}
	return errors.Join(errs...)
}

// DefaultEnvFile is read by the CLI unless SEABATTLE_ENV names another file.
func DefaultEnvFile() string {
	if p := os.Getenv(EnvPrefix + "ENV"); p != "" {
		return p
	}
	return ".env"
}
