package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Default()
	if cfg.ArtifactRoot == "" {
		t.Fatal("expected default artifact root")
	}
	if cfg.SyncInterval <= 0 {
		t.Fatal("expected positive sync interval")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected log_level=info by default, got %q", cfg.LogLevel)
	}
	if !cfg.API.Enabled || cfg.API.Addr != ":8080" {
		t.Fatalf("expected api enabled on :8080 by default, got %+v", cfg.API)
	}
	if cfg.Frames.Wide.Width != 760 || cfg.Frames.Wide.Height != 170 {
		t.Fatalf("expected 760x170 wide frame, got %+v", cfg.Frames.Wide)
	}
	if cfg.Frames.Calibration.Width != 320 || cfg.Frames.Calibration.Height != 220 {
		t.Fatalf("expected 320x220 calibration frame, got %+v", cfg.Frames.Calibration)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Fatalf("expected cache ttl 10m by default, got %v", cfg.Cache.TTL)
	}
	if cfg.Render.Concurrency <= 0 {
		t.Fatal("expected positive render concurrency")
	}
}

func TestLoadFromYAML(t *testing.T) {
	yaml := `
artifact_root: /data/pre
sync_interval: 1m
log_level: debug
log_format: json
api:
  enabled: false
  addr: 127.0.0.1:9090
frames:
  wide:
    width: 900
    height: 200
cache:
  ttl: 2m
render:
  concurrency: 8
`
	f, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write([]byte(yaml)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg, err := LoadFile(f.Name())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ArtifactRoot != "/data/pre" {
		t.Fatalf("expected artifact root /data/pre, got %q", cfg.ArtifactRoot)
	}
	if cfg.SyncInterval != time.Minute {
		t.Fatalf("expected 1m sync interval, got %v", cfg.SyncInterval)
	}
	if cfg.API.Enabled || cfg.API.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected api config %+v", cfg.API)
	}
	if cfg.Frames.Wide.Width != 900 || cfg.Frames.Wide.Height != 200 {
		t.Fatalf("unexpected wide frame %+v", cfg.Frames.Wide)
	}
	if cfg.Frames.Calibration.Width != 320 {
		t.Fatalf("expected calibration frame default to survive, got %+v", cfg.Frames.Calibration)
	}
	if cfg.Cache.TTL != 2*time.Minute {
		t.Fatalf("expected 2m cache ttl, got %v", cfg.Cache.TTL)
	}
	if cfg.Render.Concurrency != 8 {
		t.Fatalf("expected concurrency 8, got %d", cfg.Render.Concurrency)
	}
}

func TestLoadFileInvalidPath(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("expected error for invalid path")
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	f, err := os.CreateTemp("", "bad-config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write([]byte("{{invalid yaml")); err != nil {
		t.Fatal(err)
	}
	f.Close()

	_, err = LoadFile(f.Name())
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestApplyEnvAllVars(t *testing.T) {
	t.Setenv("FORECASTVIZ_ARTIFACT_ROOT", "/srv/artifacts")
	t.Setenv("FORECASTVIZ_SYNC_INTERVAL", "45s")
	t.Setenv("FORECASTVIZ_LOG_LEVEL", "WARN")
	t.Setenv("FORECASTVIZ_LOG_FORMAT", "json")
	t.Setenv("FORECASTVIZ_PROFILE", "print")
	t.Setenv("FORECASTVIZ_API_ADDR", ":9999")
	t.Setenv("FORECASTVIZ_API_ENABLED", "0")
	t.Setenv("FORECASTVIZ_CACHE_TTL", "30s")
	t.Setenv("FORECASTVIZ_RENDER_CONCURRENCY", "2")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.ArtifactRoot != "/srv/artifacts" {
		t.Fatalf("expected artifact root from env, got %q", cfg.ArtifactRoot)
	}
	if cfg.SyncInterval != 45*time.Second {
		t.Fatalf("expected 45s sync interval, got %v", cfg.SyncInterval)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected lowercased log level, got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("expected json log format, got %q", cfg.LogFormat)
	}
	if cfg.Profile != "print" {
		t.Fatalf("expected print profile, got %q", cfg.Profile)
	}
	if cfg.API.Addr != ":9999" || cfg.API.Enabled {
		t.Fatalf("unexpected api config %+v", cfg.API)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Fatalf("expected 30s cache ttl, got %v", cfg.Cache.TTL)
	}
	if cfg.Render.Concurrency != 2 {
		t.Fatalf("expected concurrency 2, got %d", cfg.Render.Concurrency)
	}
}

func TestApplyEnvIgnoresBadDuration(t *testing.T) {
	t.Setenv("FORECASTVIZ_SYNC_INTERVAL", "soon")
	cfg := Default()
	cfg.ApplyEnv()
	if cfg.SyncInterval != 30*time.Second {
		t.Fatalf("expected default sync interval to survive, got %v", cfg.SyncInterval)
	}
}
