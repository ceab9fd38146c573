package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoPolymarket/forecastviz/internal/dashboard"
	"github.com/GoPolymarket/forecastviz/internal/payload"
)

func newModesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List demo modes and whether their artifacts load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := payload.NewStore(opts.cfg.ArtifactRoot, 0, opts.log)
			// Per-mode failures surface through Failures in the status column.
			if err := store.Sync(cmd.Context()); errors.Is(err, context.Canceled) {
				return err
			}
			return printModes(cmd.OutOrStdout(), store)
		},
	}
}

func printModes(w io.Writer, store *payload.Store) error {
	available := make(map[string]bool)
	for _, m := range store.Modes() {
		available[m] = true
	}
	failures := store.Failures()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tDATASET\tMODEL\tSTATUS")
	for _, c := range payload.ModeCards() {
		status := "missing"
		switch {
		case available[c.Mode]:
			status = "ok"
		case failures[c.Mode] != nil:
			status = "invalid: " + failures[c.Mode].Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Mode, c.Dataset, c.Model, status)
	}
	return tw.Flush()
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <mode>",
		Short: "Print the markdown digest of a mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := payload.NewStore(opts.cfg.ArtifactRoot, 0, opts.log)
			p, _, err := store.Load(args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), dashboard.RenderMarkdown(p))
			return err
		},
	}
}
