package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  port: 9000
  debug: true
generator:
  interval: 250ms
  anomaly_chance: 0.2
stations:
  path: "/var/lib/supersid/stations.db"
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if !cfg.Server.Debug {
		t.Error("Server.Debug = false, want true")
	}
	if cfg.Generator.Interval != 250*time.Millisecond {
		t.Errorf("Generator.Interval = %v, want 250ms", cfg.Generator.Interval)
	}
	if cfg.Generator.AnomalyChance != 0.2 {
		t.Errorf("Generator.AnomalyChance = %f, want 0.2", cfg.Generator.AnomalyChance)
	}
	if cfg.Stations.Path != "/var/lib/supersid/stations.db" {
		t.Errorf("Stations.Path = %q", cfg.Stations.Path)
	}

	// Defaults should still be applied for unspecified fields.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default 0.0.0.0", cfg.Server.Host)
	}
	if !cfg.Generator.AutoStart {
		t.Error("Generator.AutoStart should default to true")
	}
	if cfg.SpaceWeather.UpdateInterval != 60*time.Second {
		t.Errorf("SpaceWeather.UpdateInterval = %v, want default 60s", cfg.SpaceWeather.UpdateInterval)
	}
	if cfg.History.Capacity != 3600 {
		t.Errorf("History.Capacity = %d, want default 3600", cfg.History.Capacity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() on missing file should return error")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want default 8000", cfg.Server.Port)
	}
	if cfg.Generator.Interval != time.Second {
		t.Errorf("Generator.Interval = %v, want default 1s", cfg.Generator.Interval)
	}
	if cfg.Generator.AnomalyChance != 0.05 {
		t.Errorf("Generator.AnomalyChance = %f, want default 0.05", cfg.Generator.AnomalyChance)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte(":::not valid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load() with invalid YAML should return error")
	}
}
