package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"milkrun/internal/cli"
	"milkrun/internal/export"
	"milkrun/internal/manifest"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file.csv]",
		Short: "Export the route with completion state as CSV",
		Long: `Export the current route as a flat CSV: one row per item, one row for
each stop without items, each carrying the Completed flag and completion
date. Writes to stdout when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, cleanup, err := getDatabase(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	classifier := loadClassifier(ctx, store)
	m, err := loadModel(ctx, store, classifier)
	if err != nil {
		return err
	}
	tracker := loadTracker(ctx, store)

	records := export.NewProjection().ToFlatRecords(m, tracker.Snapshot())

	out := os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := manifest.WriteRecords(out, records); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	if len(args) == 1 {
		slog.Info(cli.FormatSuccess("Export complete"), "file", args[0], "rows", len(records))
	}
	return nil
}
