package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Validate checks runtime configuration constraints.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ArtifactRoot) == "" {
		return fmt.Errorf("artifact_root must not be empty")
	}
	if c.SyncInterval < 0 {
		return fmt.Errorf("sync_interval must be >= 0, got %v", c.SyncInterval)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	format := strings.ToLower(strings.TrimSpace(c.LogFormat))
	if format != "" && format != "json" && format != "console" {
		return fmt.Errorf("log_format must be 'json' or 'console', got %q", c.LogFormat)
	}

	if c.API.Enabled && strings.TrimSpace(c.API.Addr) == "" {
		return fmt.Errorf("api.addr must be set when api.enabled is true")
	}

	if c.Frames.Wide.Width <= 0 || c.Frames.Wide.Height <= 0 {
		return fmt.Errorf("frames.wide must be positive, got %dx%d", c.Frames.Wide.Width, c.Frames.Wide.Height)
	}
	if c.Frames.Calibration.Width <= 0 || c.Frames.Calibration.Height <= 0 {
		return fmt.Errorf("frames.calibration must be positive, got %dx%d", c.Frames.Calibration.Width, c.Frames.Calibration.Height)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0, got %v", c.Cache.TTL)
	}
	if c.Render.Concurrency <= 0 {
		return fmt.Errorf("render.concurrency must be > 0, got %d", c.Render.Concurrency)
	}

	return nil
}
