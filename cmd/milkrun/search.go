package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"milkrun/internal/cli"
	"milkrun/internal/search"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search stops by name, address, number, area or item",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

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

	matches := search.Search(m, query)
	if len(matches) == 0 {
		slog.Info(cli.FormatWarning("No matching stops"), "query", query)
		return nil
	}

	slog.Info(cli.FormatTitle("Search results"), "query", query, "matches", len(matches))
	for _, customer := range matches {
		printStop(customer, tracker, tracker.IsCustomerComplete(customer))
	}
	return nil
}
