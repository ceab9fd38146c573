package config

import "testing"

func TestValidateDefaultConfig(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default config to be valid, got %v", err)
	}
}

func TestValidateEmptyArtifactRoot(t *testing.T) {
	cfg := Default()
	cfg.ArtifactRoot = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected empty artifact root to fail")
	}
}

func TestValidateInvalidLogging(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown log level to fail")
	}

	cfg = Default()
	cfg.LogFormat = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown log format to fail")
	}
}

func TestValidateAPIAddr(t *testing.T) {
	cfg := Default()
	cfg.API.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected empty addr with api enabled to fail")
	}
	cfg.API.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected empty addr to be fine with api disabled, got %v", err)
	}
}

func TestValidateFrames(t *testing.T) {
	cfg := Default()
	cfg.Frames.Wide.Height = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected zero wide frame height to fail")
	}

	cfg = Default()
	cfg.Frames.Calibration.Width = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected negative calibration width to fail")
	}
}

func TestValidateRenderConcurrency(t *testing.T) {
	cfg := Default()
	cfg.Render.Concurrency = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected zero concurrency to fail")
	}
}
