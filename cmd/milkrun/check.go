package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"milkrun/internal/cli"
	"milkrun/internal/model"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <customer-number> [item-id]",
		Short: "Mark a stop or item as delivered",
		Long: `Mark a delivery as complete.

With only a customer number, this checks the stop itself - valid for
customers that have no items. For customers with items, check each item id;
the stop rolls up to complete once every item is checked.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, args, true)
		},
	}
	cmd.Flags().Bool("all", false, "Check every stop and item on the route")
	return cmd
}

func uncheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uncheck <customer-number> [item-id]",
		Short: "Mark a stop or item as not delivered",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, args, false)
		},
	}
	cmd.Flags().Bool("all", false, "Uncheck everything on the route")
	return cmd
}

func runToggle(cmd *cobra.Command, args []string, checked bool) error {
	ctx := cmd.Context()
	all, _ := cmd.Flags().GetBool("all")

	if !all && len(args) == 0 {
		return cmd.Usage()
	}

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

	var stats model.CompletionStats
	switch {
	case all && checked:
		stats = tracker.CheckAll(ctx, m)
	case all:
		stats = tracker.UncheckAll(ctx, m)
	default:
		customerNumber := args[0]
		itemID := ""
		if len(args) == 2 {
			itemID = args[1]
		}
		stats = tracker.Toggle(ctx, m, customerNumber, itemID, checked)
	}

	slog.Info(cli.FormatSuccess("Completion updated"),
		"stops", formatProgress(stats.CompletedStops, stats.TotalStops, stats.StopsProgress),
		"items", formatProgress(stats.CompletedItems, stats.TotalItems, stats.ItemsProgress))
	return nil
}
