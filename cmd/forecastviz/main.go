package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/GoPolymarket/forecastviz/internal/config"
	"github.com/GoPolymarket/forecastviz/internal/logging"
)

type options struct {
	cfgPath   string
	envFile   string
	profile   string
	artifacts string
	logLevel  string

	cfg config.Config
	log zerolog.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "forecastviz",
		Short:        "Render probabilistic forecast dashboards",
		Long:         "forecastviz turns forecast payloads (quantile bands, fan spreads, tail-risk grids,\nregime markers, calibration bins) into SVG/PNG charts, HTML dashboards and exports.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfgPath, "config", "config.yaml", "path to config file")
	pf.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before FORECASTVIZ_* overrides")
	pf.StringVar(&opts.profile, "profile", "", "frame profile preset: compact|wide|print")
	pf.StringVar(&opts.artifacts, "artifacts", "", "override artifact root directory")
	pf.StringVar(&opts.logLevel, "log-level", "", "override log level")

	root.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
		newExportCmd(opts),
		newModesCmd(opts),
		newSummaryCmd(opts),
	)
	return root
}

func (o *options) load(cmd *cobra.Command) error {
	if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("env file %s: %w", o.envFile, err)
	}

	cfg := config.Default()
	if o.cfgPath != "" {
		loaded, err := config.LoadFile(o.cfgPath)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config"):
		default:
			return fmt.Errorf("config file: %w", err)
		}
	}
	cfg.ApplyEnv()
	if v := strings.TrimSpace(o.artifacts); v != "" {
		cfg.ArtifactRoot = v
	}
	if v := strings.TrimSpace(o.logLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	profile := cfg.Profile
	if v := strings.TrimSpace(o.profile); v != "" {
		profile = v
	}
	if err := config.ApplyProfile(&cfg, profile); err != nil {
		return fmt.Errorf("invalid --profile: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	o.cfg = cfg
	o.log = logging.Setup(cfg.LogLevel, cfg.LogFormat)
	return nil
}
