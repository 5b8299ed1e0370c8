// Package config defines CLI configuration and its loading order.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config contains process configuration for the ufametrics CLI.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `koanf:"db_path"`

	// Season is the default season filter for efficiency/batch commands.
	Season string `koanf:"season"`

	// Workers bounds the batch worker pool.
	Workers int `koanf:"workers"`

	// MetricsAddr, when non-empty, serves prometheus /metrics during batch
	// runs, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		DBPath:  filepath.Join(userHome(), ".ufametrics", "ufametrics.db"),
		Workers: runtime.NumCPU(),
	}
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
