package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"milkrun/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show route and completion statistics",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
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
	stats := tracker.Stats(m)

	summary := fmt.Sprintf(
		"Customers: %d (%d without items)\nItems: %d (%.2f per customer)\nStops: %s\nItems done: %s",
		m.Stats.TotalCustomers,
		m.Stats.CustomersWithoutItems,
		m.Stats.TotalItems,
		m.Stats.ItemsPerCustomer,
		formatProgress(stats.CompletedStops, stats.TotalStops, stats.StopsProgress),
		formatProgress(stats.CompletedItems, stats.TotalItems, stats.ItemsProgress))
	fmt.Fprintln(os.Stdout, cli.RenderBox(cli.ChartIcon+" Route statistics", summary))

	areas := make([]string, 0, len(m.AreaStats))
	for name := range m.AreaStats {
		areas = append(areas, name)
	}
	sort.Strings(areas)
	for _, name := range areas {
		completed := 0
		for _, customer := range m.CustomersByArea[name] {
			if tracker.IsCustomerComplete(customer) {
				completed++
			}
		}
		slog.Info("Area", "name", name, "stops", m.AreaStats[name], "completed", completed)
	}

	types := make([]string, 0, len(m.ItemsByType))
	for name := range m.ItemsByType {
		types = append(types, name)
	}
	sort.Strings(types)
	for _, name := range types {
		slog.Info("Item type", "type", name, "items", len(m.ItemsByType[name]))
	}

	return nil
}
