package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaults(t *testing.T) {
	t.Setenv("UFAMETRICS_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath == "" {
		t.Error("default DBPath must not be empty")
	}
	if filepath.Base(cfg.DBPath) != "ufametrics.db" {
		t.Errorf("unexpected default db file: %s", cfg.DBPath)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers: want %d, got %d", runtime.NumCPU(), cfg.Workers)
	}
	if cfg.Season != "" || cfg.MetricsAddr != "" {
		t.Errorf("expected empty season and metrics addr, got %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("UFAMETRICS_CONFIG", "")
	t.Setenv("UFAMETRICS_DB_PATH", "/tmp/ufa-test.db")
	t.Setenv("UFAMETRICS_SEASON", "2025")
	t.Setenv("UFAMETRICS_WORKERS", "3")
	t.Setenv("UFAMETRICS_METRICS_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/ufa-test.db" {
		t.Errorf("DBPath: want /tmp/ufa-test.db, got %s", cfg.DBPath)
	}
	if cfg.Season != "2025" {
		t.Errorf("Season: want 2025, got %s", cfg.Season)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers: want 3, got %d", cfg.Workers)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr: want :9090, got %s", cfg.MetricsAddr)
	}
}

func TestFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "db_path: /tmp/from-file.db\nseason: \"2024\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("UFAMETRICS_CONFIG", path)
	t.Setenv("UFAMETRICS_SEASON", "2025")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// File sets what env does not touch.
	if cfg.DBPath != "/tmp/from-file.db" {
		t.Errorf("DBPath: want /tmp/from-file.db, got %s", cfg.DBPath)
	}
	// Env wins over the file.
	if cfg.Season != "2025" {
		t.Errorf("Season: want 2025 (env over file), got %s", cfg.Season)
	}
}

func TestMissingConfigFile(t *testing.T) {
	t.Setenv("UFAMETRICS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestEmptyDBPathRejected(t *testing.T) {
	t.Setenv("UFAMETRICS_CONFIG", "")
	t.Setenv("UFAMETRICS_DB_PATH", "")

	// An explicitly empty db_path is invalid.
	if _, err := Load(); err == nil {
		t.Error("expected an error for an empty db_path")
	}
}
