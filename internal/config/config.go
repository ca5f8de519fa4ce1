// Package config loads the simulator configuration from YAML.
package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Generator    GeneratorConfig    `yaml:"generator"`
	SpaceWeather SpaceWeatherConfig `yaml:"space_weather"`
	Stations     StationsConfig     `yaml:"stations"`
	History      HistoryConfig      `yaml:"history"`
}

type ServerConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

type GeneratorConfig struct {
	Interval      time.Duration `yaml:"interval"`
	AnomalyChance float64       `yaml:"anomaly_chance"`
	AutoStart     bool          `yaml:"auto_start"`
}

type SpaceWeatherConfig struct {
	UpdateInterval time.Duration `yaml:"update_interval"`
}

type StationsConfig struct {
	Path string `yaml:"path"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Generator: GeneratorConfig{
			Interval:      time.Second,
			AnomalyChance: 0.05,
			AutoStart:     true,
		},
		SpaceWeather: SpaceWeatherConfig{
			UpdateInterval: 60 * time.Second,
		},
		Stations: StationsConfig{
			Path: "stations.db",
		},
		History: HistoryConfig{
			Capacity: 3600,
		},
	}
}

// Load reads the config file at path. Fields the file omits keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the default config when
// the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}
