package server

import (
	"fmt"
	"os"

	"github.com/sugawarayuuta/sonnet"

	"github.com/sarfdb/sarf/sarf/logging"
)

// Environment overrides, applied on top of the config file.
const (
	EnvAddr    = "SARF_ADDR"
	EnvDataDir = "SARF_DATA_DIR"
)

// Config holds the runtime settings of the HTTP collaborator.
type Config struct {
	// Addr is the listen address.
	Addr string `json:"addr"`
	// DataDir is the badger database directory. Empty disables
	// persistence.
	DataDir string `json:"data_dir"`
	// Phonology enables the phonological refinement pass.
	Phonology bool `json:"phonology"`
	// Log configures the zerolog output.
	Log logging.Config `json:"log"`
}

// DefaultConfig returns the defaults used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Addr:    ":8000",
		DataDir: "data",
		Log:     logging.Config{Level: "info"},
	}
}

// LoadConfig reads a JSON config file over the defaults, then applies
// environment overrides. An empty path yields defaults + environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := sonnet.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	return cfg, nil
}
