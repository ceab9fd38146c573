package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GoPolymarket/forecastviz/internal/charts"
)

type Config struct {
	ArtifactRoot string        `yaml:"artifact_root"`
	SyncInterval time.Duration `yaml:"sync_interval"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
	Profile      string        `yaml:"profile"`

	API    APIConfig     `yaml:"api"`
	Frames charts.Frames `yaml:"frames"`
	Cache  CacheConfig   `yaml:"cache"`
	Render RenderConfig  `yaml:"render"`
}

type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type CacheConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// RenderConfig controls batch rendering from the CLI.
type RenderConfig struct {
	OutDir      string `yaml:"out_dir"`
	Concurrency int    `yaml:"concurrency"`
}

func Default() Config {
	return Config{
		ArtifactRoot: "artifacts",
		SyncInterval: 30 * time.Second,
		LogLevel:     "info",
		LogFormat:    "console",
		API: APIConfig{
			Enabled: true,
			Addr:    ":8080",
		},
		Frames: charts.DefaultFrames(),
		Cache: CacheConfig{
			TTL:             10 * time.Minute,
			CleanupInterval: 15 * time.Minute,
		},
		Render: RenderConfig{
			OutDir:      "out",
			Concurrency: 4,
		},
	}
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("FORECASTVIZ_ARTIFACT_ROOT")); v != "" {
		c.ArtifactRoot = v
	}
	if v := strings.TrimSpace(os.Getenv("FORECASTVIZ_SYNC_INTERVAL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SyncInterval = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("FORECASTVIZ_LOG_LEVEL")); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("FORECASTVIZ_LOG_FORMAT")); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("FORECASTVIZ_PROFILE")); v != "" {
		c.Profile = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("FORECASTVIZ_API_ADDR")); v != "" {
		c.API.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("FORECASTVIZ_API_ENABLED")); v != "" {
		c.API.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
	if v := strings.TrimSpace(os.Getenv("FORECASTVIZ_CACHE_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Cache.TTL = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("FORECASTVIZ_RENDER_CONCURRENCY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Render.Concurrency = n
		}
	}
}
