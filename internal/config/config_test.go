package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DREAMCHASER_DATA_DIR", "/tmp/dreamchaser-test")
	t.Setenv("DREAMCHASER_ENGINE", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "/tmp/dreamchaser-test" || cfg.Engine != EngineSQLite {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DBPath() != filepath.Join("/tmp/dreamchaser-test", "dreamchaser.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath())
	}
}

func TestLoad_DefaultsToXDGDataDir(t *testing.T) {
	t.Setenv("DREAMCHASER_DATA_DIR", "")
	t.Setenv("DREAMCHASER_ENGINE", "")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != filepath.Join("/tmp/xdg", "dreamchaser") {
		t.Fatalf("unexpected data dir: %s", cfg.DataDir)
	}
	if cfg.Engine != EngineCSV {
		t.Fatalf("expected csv default, got %q", cfg.Engine)
	}
}

func TestLoad_RejectsUnknownEngine(t *testing.T) {
	t.Setenv("DREAMCHASER_ENGINE", "postgres")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown engine")
	}
}
