package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/GoPolymarket/forecastviz/internal/charts"
	"github.com/GoPolymarket/forecastviz/internal/dashboard"
	"github.com/GoPolymarket/forecastviz/internal/payload"
	"github.com/GoPolymarket/forecastviz/internal/raster"
	"github.com/GoPolymarket/forecastviz/internal/surface"
	"github.com/GoPolymarket/forecastviz/internal/workbook"
)

// Output formats written by render.
const (
	formatSVG  = "svg"
	formatPNG  = "png"
	formatHTML = "html"
	formatMD   = "md"
	formatXLSX = "xlsx"
)

var allFormats = []string{formatSVG, formatPNG, formatHTML, formatMD, formatXLSX}

func parseFormats(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return allFormats, nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, f := range raw {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case formatSVG, formatPNG, formatHTML, formatMD, formatXLSX:
		case "all":
			return allFormats, nil
		default:
			return nil, fmt.Errorf("unknown format %q (supported: svg|png|html|md|xlsx|all)", f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

type renderJob struct {
	store   *payload.Store
	frames  charts.Frames
	outDir  string
	formats []string
	log     zerolog.Logger
}

// renderModes renders every mode concurrently, at most limit at a time.
func (j renderJob) renderModes(ctx context.Context, modes []string, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, mode := range modes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return j.renderMode(mode)
		})
	}
	return g.Wait()
}

func (j renderJob) renderMode(mode string) error {
	p, digest, err := j.store.Load(mode)
	if err != nil {
		return err
	}
	dir := filepath.Join(j.outDir, mode)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("render %s: %w", mode, err)
	}

	d := dashboard.Compose(p, j.frames)
	written := 0
	write := func(name string, b []byte) error {
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			return fmt.Errorf("render %s: %w", mode, err)
		}
		written++
		return nil
	}

	for _, format := range j.formats {
		switch format {
		case formatSVG:
			for _, panel := range d.Panels {
				if err := write(string(panel.Kind)+".svg", []byte(surface.SVG(panel.Surface))); err != nil {
					return err
				}
			}
		case formatPNG:
			for _, panel := range d.Panels {
				b, err := raster.PNG(panel.Surface)
				if err != nil {
					return fmt.Errorf("render %s %s: %w", mode, panel.Kind, err)
				}
				if err := write(string(panel.Kind)+".png", b); err != nil {
					return err
				}
			}
		case formatHTML:
			if err := write("index.html", []byte(dashboard.RenderHTML(d))); err != nil {
				return err
			}
		case formatMD:
			if err := write("summary.md", []byte(dashboard.RenderMarkdown(p))); err != nil {
				return err
			}
		case formatXLSX:
			f, err := os.Create(filepath.Join(dir, mode+".xlsx"))
			if err != nil {
				return fmt.Errorf("render %s: %w", mode, err)
			}
			werr := workbook.Write(f, p)
			cerr := f.Close()
			if werr != nil {
				return fmt.Errorf("render %s: %w", mode, werr)
			}
			if cerr != nil {
				return fmt.Errorf("render %s: %w", mode, cerr)
			}
			written++
		}
	}

	j.log.Info().Str("mode", mode).Str("digest", digest[:12]).Int("files", written).Str("dir", dir).Msg("rendered")
	return nil
}

func newRenderCmd(opts *options) *cobra.Command {
	var (
		all     bool
		outDir  string
		formats []string
	)
	cmd := &cobra.Command{
		Use:   "render [mode...]",
		Short: "Render charts, dashboards and exports to disk",
		Example: "  forecastviz render telemetry finance\n" +
			"  forecastviz render --all --format svg,html --out site",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := parseFormats(formats)
			if err != nil {
				return err
			}
			store := payload.NewStore(opts.cfg.ArtifactRoot, opts.cfg.SyncInterval, opts.log)
			modes := args
			if all {
				if err := store.Sync(cmd.Context()); err != nil {
					opts.log.Warn().Err(err).Msg("some payloads were rejected")
				}
				modes = store.Modes()
			}
			if len(modes) == 0 {
				return fmt.Errorf("no modes to render (pass mode names or --all)")
			}
			if outDir == "" {
				outDir = opts.cfg.Render.OutDir
			}
			job := renderJob{
				store:   store,
				frames:  opts.cfg.Frames,
				outDir:  outDir,
				formats: selected,
				log:     opts.log,
			}
			return job.renderModes(cmd.Context(), modes, opts.cfg.Render.Concurrency)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "render every mode with an artifact")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default render.out_dir)")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "formats to write: svg,png,html,md,xlsx (default all)")
	return cmd
}
