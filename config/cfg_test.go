package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"fontset/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration(\"\"): %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("version = %d", cfg.Version)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("file level = %q", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte(`
version: 1
store:
  path: faces.db
logging:
  console:
    level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	if cfg.Store.Path != "faces.db" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
	// Values not present in the file keep their defaults.
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("file mode = %q", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nloging: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadConfiguration(path); err == nil {
		t.Error("expected error for misspelled key")
	}
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("version: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadConfiguration(path); err == nil {
		t.Error("expected error for unsupported version")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = "faces.db"

	data, err := config.Dump(cfg)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	back, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration of dumped config: %v", err)
	}
	if back.Store.Path != "faces.db" {
		t.Errorf("dumped config did not round-trip: %+v", back)
	}
}
