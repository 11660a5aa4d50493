package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"milkrun/internal/cli"
	"milkrun/internal/completion"
	"milkrun/internal/model"
)

func stopsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stops",
		Short: "List route stops and their completion state",
		RunE:  runStops,
	}

	cmd.Flags().String("area", "", "Only show stops in this area")
	cmd.Flags().Bool("incomplete", false, "Only show stops that are not complete")

	return cmd
}

func runStops(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	areaFilter, _ := cmd.Flags().GetString("area")
	incompleteOnly, _ := cmd.Flags().GetBool("incomplete")

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

	customers := m.Customers
	if areaFilter != "" {
		customers = m.CustomersByArea[areaFilter]
		if len(customers) == 0 {
			slog.Info(cli.FormatWarning(fmt.Sprintf("No stops in area %q", areaFilter)))
			return nil
		}
	}

	shown := 0
	for _, customer := range customers {
		complete := tracker.IsCustomerComplete(customer)
		if incompleteOnly && complete {
			continue
		}
		shown++
		printStop(customer, tracker, complete)
	}

	if shown == 0 {
		slog.Info(cli.FormatSuccess("All stops complete"))
	}
	return nil
}

func printStop(customer *model.Customer, tracker *completion.Tracker, complete bool) {
	mark := cli.ErrorStyle.Render("○")
	if complete {
		mark = cli.SuccessStyle.Render("●")
	}

	fmt.Fprintf(os.Stdout, "%s %s  %s  %s  %s\n",
		mark,
		customer.CustomerNumber,
		customer.AccountName,
		customer.Address,
		cli.FormatSubtle(customer.Area))

	for _, item := range customer.Items {
		itemMark := " "
		if tracker.IsChecked(completion.Key(customer.CustomerNumber, item.ItemID)) {
			itemMark = cli.SuccessIcon
		}
		fmt.Fprintf(os.Stdout, "    [%s] %s  %s  x%d\n", itemMark, item.ItemID, item.Description, item.Quantity)
	}
}
