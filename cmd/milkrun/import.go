package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"milkrun/internal/cli"
	"milkrun/internal/ingest"
	"milkrun/internal/manifest"
	"milkrun/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a delivery manifest",
		Long: `Import a CSV delivery manifest and build the route model.

The manifest is cached locally so later commands can rebuild the route
without the source file. Completion progress for customers that still exist
in the new manifest is carried forward; progress for removed customers is
dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	slog.Info(cli.FormatTitle("Importing delivery manifest"))
	slog.Info("Reading manifest", "file", path)

	records, err := manifest.ReadRecords(f)
	if err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Parsed %d rows", len(records))))

	store, cleanup, err := getDatabase(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	classifier := loadClassifier(ctx, store)
	pipeline := ingest.NewPipeline(classifier)

	bar := progressbar.Default(int64(len(records)), "building route")
	m := pipeline.IngestWithProgress(records, func() { _ = bar.Add(1) })
	_ = bar.Finish()

	displayRouteSummary(m)

	if viper.GetBool("import.dry_run") {
		slog.Info(cli.FormatWarning("Dry run mode - not saving to database"))
		return nil
	}

	if err := store.SaveManifest(ctx, records); err != nil {
		return fmt.Errorf("failed to cache manifest: %w", err)
	}

	// Carry progress forward for customers that survived the re-import.
	tracker := loadTracker(ctx, store)
	tracker.Reconcile(ctx, m)

	stats := tracker.Stats(m)
	slog.Info(cli.FormatSuccess("Import complete"))
	slog.Info("Progress carried forward",
		"stops", formatProgress(stats.CompletedStops, stats.TotalStops, stats.StopsProgress),
		"items", formatProgress(stats.CompletedItems, stats.TotalItems, stats.ItemsProgress))

	return nil
}

func displayRouteSummary(m *model.RouteModel) {
	slog.Info("Route built",
		"customers", m.Stats.TotalCustomers,
		"items", m.Stats.TotalItems,
		"without_items", m.Stats.CustomersWithoutItems,
		"items_per_customer", fmt.Sprintf("%.2f", m.Stats.ItemsPerCustomer))

	for _, rule := range sortedAreaNames(m) {
		slog.Info("Area", "name", rule, "stops", m.AreaStats[rule])
	}
}

func sortedAreaNames(m *model.RouteModel) []string {
	names := make([]string, 0, len(m.AreaStats))
	for name := range m.AreaStats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
