package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestRegisterFlags(t *testing.T) {
	c := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	err := fs.Parse([]string{"-seed", "42", "-pattern", "(Row + Col) % 2 == 0", "-log-level", "debug", "-runs", "5"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Seed != 42 || c.PlacementRuns != 5 || c.LogLevel != "debug" {
		t.Fatalf("parsed config = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	p, err := c.Pattern()
	if err != nil || p == nil {
		t.Fatalf("Pattern() = %v, %v", p, err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"attempts", func(c *Config) { c.PlacementAttempts = 0 }},
		{"runs", func(c *Config) { c.PlacementRuns = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"pattern", func(c *Config) { c.SearchPattern = "Row +" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatalf("Validate accepted bad %s", tc.name)
			}
		})
	}
}

func TestSeededRandReproducible(t *testing.T) {
	c := Default()
	c.Seed = 9
	a, b := c.Rand(), c.Rand()
	for i := 0; i < 10; i++ {
		if a.Int63() != b.Int63() {
			t.Fatalf("seeded sources diverged")
		}
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.env")
	body := "SEABATTLE_SEED=7\nSEABATTLE_RUNS=4\nSEABATTLE_LOG_LEVEL=debug\nSEABATTLE_KEYS=/tmp/k\nOTHER=1\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	c := Default()
	if err := c.LoadEnv(path); err != nil {
		t.Fatal(err)
	}
	if c.Seed != 7 || c.PlacementRuns != 4 || c.LogLevel != "debug" || c.KeysDir != "/tmp/k" {
		t.Fatalf("config after LoadEnv = %+v", c)
	}
	if c.PlacementAttempts != Default().PlacementAttempts {
		t.Fatalf("unset key changed attempts to %d", c.PlacementAttempts)
	}

	// flags override the file
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-seed", "11"}); err != nil {
		t.Fatal(err)
	}
	if c.Seed != 11 {
		t.Fatalf("flag did not override env seed: %d", c.Seed)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	c := Default()
	if err := c.LoadEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if c != Default() {
		t.Fatalf("config changed: %+v", c)
	}
}

func TestLoadEnvBadNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.env")
	if err := os.WriteFile(path, []byte("SEABATTLE_ATTEMPTS=many\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := Default()
	if err := c.LoadEnv(path); err == nil {
		t.Fatalf("bad number accepted")
	}
}
