package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"milkrun/internal/cli"
)

// Per-route preferences (default area filter, display options) live in the
// store's key/value table so they survive sessions alongside the manifest.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set stored preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a stored preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			value, ok, err := store.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to read preference: %w", err)
			}
			if !ok {
				slog.Info(cli.FormatWarning("Preference not set"), "key", args[0])
				return nil
			}
			fmt.Fprintln(os.Stdout, value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.Set(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to store preference: %w", err)
			}
			slog.Info(cli.FormatSuccess("Preference stored"), "key", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a stored preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to remove preference: %w", err)
			}
			slog.Info(cli.FormatSuccess("Preference removed"), "key", args[0])
			return nil
		},
	})

	return cmd
}
