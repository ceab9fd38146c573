package config

import (
	"fmt"
	"strings"
)

// ApplyProfile applies a frame-size preset to the config.
// Supported profiles:
// - compact: narrow frames for embedding next to other content
// - wide:    the standard dashboard frames
// - print:   larger frames for static exports
func ApplyProfile(cfg *Config, profile string) error {
	p := strings.ToLower(strings.TrimSpace(profile))
	if p == "" {
		return nil
	}

	switch p {
	case "compact":
		clampMaxInt(&cfg.Frames.Wide.Width, 480)
		clampMaxInt(&cfg.Frames.Wide.Height, 120)
		clampMaxInt(&cfg.Frames.Calibration.Width, 240)
		clampMaxInt(&cfg.Frames.Calibration.Height, 165)
	case "wide", "default":
		cfg.Frames.Wide.Width, cfg.Frames.Wide.Height = 760, 170
		cfg.Frames.Calibration.Width, cfg.Frames.Calibration.Height = 320, 220
	case "print":
		clampMinInt(&cfg.Frames.Wide.Width, 1520)
		clampMinInt(&cfg.Frames.Wide.Height, 340)
		clampMinInt(&cfg.Frames.Calibration.Width, 640)
		clampMinInt(&cfg.Frames.Calibration.Height, 440)
	default:
		return fmt.Errorf("unknown profile %q (supported: compact|wide|print)", profile)
	}

	cfg.Profile = p
	return nil
}

func clampMaxInt(v *int, max int) {
	if max <= 0 {
		return
	}
	if *v <= 0 || *v > max {
		*v = max
	}
}

func clampMinInt(v *int, min int) {
	if *v < min {
		*v = min
	}
}
