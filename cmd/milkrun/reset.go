package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"milkrun/internal/cli"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all local data",
		Long: `Reset clears the cached manifest, all completion progress and any
customized area rules. This is a destructive operation.`,
		RunE: runReset,
	}
	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		fmt.Fprint(os.Stdout, "This will delete the cached manifest, all completion progress and customized area rules.\nAre you sure you want to continue? [y/N]: ")

		var response string
		if _, err := fmt.Fscanln(os.Stdin, &response); err != nil {
			response = ""
		}
		if !strings.EqualFold(strings.TrimSpace(response), "y") {
			slog.Info("Reset canceled")
			return nil
		}
	}

	store, cleanup, err := getDatabase(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}

	slog.Info(cli.FormatSuccess("All local data cleared"))
	return nil
}
