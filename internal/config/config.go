// Package config resolves where Dream Chaser keeps its data and which
// storage engine backs it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Engine selects the storage backend.
type Engine string

const (
	EngineCSV    Engine = "csv"
	EngineSQLite Engine = "sqlite"
)

// Config is everything the binary needs to open a store.
type Config struct {
	// DataDir holds the CSV tables, or the SQLite file for that engine.
	DataDir string
	Engine  Engine
}

// DBPath is the SQLite database file location.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "dreamchaser.db")
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory. Defaults: the CSV engine, with data
// under the XDG data directory (or ~/.local/share).
func Load() (*Config, error) {
	// A missing .env is fine; only explicit settings come from it.
	_ = godotenv.Load()

	dataDir := os.Getenv("DREAMCHASER_DATA_DIR")
	if dataDir == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve data directory: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		dataDir = filepath.Join(base, "dreamchaser")
	}

	engine := Engine(getEnv("DREAMCHASER_ENGINE", string(EngineCSV)))
	switch engine {
	case EngineCSV, EngineSQLite:
	default:
		return nil, fmt.Errorf("unknown storage engine %q", engine)
	}

	return &Config{DataDir: dataDir, Engine: engine}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
