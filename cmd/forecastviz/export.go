package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoPolymarket/forecastviz/internal/charts"
	"github.com/GoPolymarket/forecastviz/internal/dashboard"
	"github.com/GoPolymarket/forecastviz/internal/payload"
	"github.com/GoPolymarket/forecastviz/internal/raster"
	"github.com/GoPolymarket/forecastviz/internal/surface"
	"github.com/GoPolymarket/forecastviz/internal/workbook"
)

// exportOne writes a single artifact of p to w: the workbook, or one chart as
// svg or png.
func exportOne(w io.Writer, p payload.Payload, frames charts.Frames, format, chart string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == formatXLSX {
		return workbook.Write(w, p)
	}
	if format != formatSVG && format != formatPNG {
		return fmt.Errorf("unknown export format %q (supported: xlsx|svg|png)", format)
	}
	kind, ok := charts.ParseKind(chart)
	if !ok {
		return fmt.Errorf("unknown chart %q (supported: %v)", chart, charts.Kinds)
	}
	panel, _ := dashboard.Compose(p, frames).Panel(kind)
	if format == formatPNG {
		return raster.Write(w, panel.Surface)
	}
	_, err := io.WriteString(w, surface.SVG(panel.Surface))
	return err
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		format string
		chart  string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export <mode>",
		Short: "Export one mode as a workbook or a single chart",
		Example: "  forecastviz export finance -f xlsx -o finance.xlsx\n" +
			"  forecastviz export telemetry -f svg --chart fan > fan.svg",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := payload.NewStore(opts.cfg.ArtifactRoot, 0, opts.log)
			p, _, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return exportOne(cmd.OutOrStdout(), p, opts.cfg.Frames, format, chart)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := exportOne(f, p, opts.cfg.Frames, format, chart); err != nil {
				f.Close()
				os.Remove(out)
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatXLSX, "xlsx|svg|png")
	cmd.Flags().StringVar(&chart, "chart", string(charts.KindForecastBands), "chart kind for svg/png")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
