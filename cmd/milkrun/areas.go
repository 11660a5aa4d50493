package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"milkrun/internal/area"
	"milkrun/internal/cli"
	"milkrun/internal/model"
)

func areasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "areas",
		Short: "Manage delivery area rules",
		Long: `Manage the rules that classify stop addresses into delivery areas.

Rules are checked in ascending priority order; the first rule whose pattern
appears in the address wins. The rule with no patterns is the catch-all and
cannot be removed.`,
	}

	cmd.AddCommand(areasListCmd())
	cmd.AddCommand(areasAddCmd())
	cmd.AddCommand(areasUpdateCmd())
	cmd.AddCommand(areasRemoveCmd())
	cmd.AddCommand(areasResetCmd())
	cmd.AddCommand(areasImportCmd())
	cmd.AddCommand(areasExportCmd())
	return cmd
}

func areasListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List area rules in match order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			classifier := loadClassifier(ctx, store)
			fmt.Fprintln(os.Stdout, cli.TitleStyle.Render(cli.PinIcon+" Area rules"))
			fmt.Fprintln(os.Stdout, cli.TableHeaderStyle.Render(
				fmt.Sprintf("%4s  %-2s %-16s %-14s %s", "prio", "", "name", "id", "patterns")))
			for _, rule := range classifier.SortedRules() {
				patterns := strings.Join(rule.Patterns, ", ")
				if rule.IsCatchAll() {
					patterns = cli.FormatSubtle("(catch-all)")
				}
				fmt.Fprintf(os.Stdout, "%4d  %s %-16s %-14s %s\n",
					rule.Priority, rule.Icon, rule.Name, rule.ID, patterns)
			}
			return nil
		},
	}
}

func areasAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Add an area rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			patterns, _ := cmd.Flags().GetString("patterns")
			priority, _ := cmd.Flags().GetInt("priority")
			color, _ := cmd.Flags().GetString("color")
			icon, _ := cmd.Flags().GetString("icon")

			classifier := loadClassifier(ctx, store)
			err = classifier.Add(model.AreaRule{
				ID:       args[0],
				Name:     args[1],
				Patterns: splitPatterns(patterns),
				Priority: priority,
				Color:    color,
				Icon:     icon,
			})
			if err != nil {
				return err
			}

			saveRules(ctx, store, classifier)
			slog.Info(cli.FormatSuccess("Area rule added"), "id", args[0])
			return nil
		},
	}

	cmd.Flags().String("patterns", "", "Comma-separated address substrings")
	cmd.Flags().Int("priority", 0, "Match priority (lower wins; default 500)")
	cmd.Flags().String("color", "", "Display color")
	cmd.Flags().String("icon", "", "Display icon")
	return cmd
}

func areasUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an area rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			classifier := loadClassifier(ctx, store)

			var upd area.RuleUpdate
			if cmd.Flags().Changed("name") {
				name, _ := cmd.Flags().GetString("name")
				upd.Name = &name
			}
			if cmd.Flags().Changed("patterns") {
				raw, _ := cmd.Flags().GetString("patterns")
				patterns := splitPatterns(raw)
				upd.Patterns = &patterns
			}
			if cmd.Flags().Changed("priority") {
				priority, _ := cmd.Flags().GetInt("priority")
				upd.Priority = &priority
			}
			if cmd.Flags().Changed("color") {
				color, _ := cmd.Flags().GetString("color")
				upd.Color = &color
			}
			if cmd.Flags().Changed("icon") {
				icon, _ := cmd.Flags().GetString("icon")
				upd.Icon = &icon
			}

			if err := classifier.Update(args[0], upd); err != nil {
				return err
			}

			saveRules(ctx, store, classifier)
			slog.Info(cli.FormatSuccess("Area rule updated"), "id", args[0])
			return nil
		},
	}

	cmd.Flags().String("name", "", "New display name")
	cmd.Flags().String("patterns", "", "Replacement comma-separated patterns")
	cmd.Flags().Int("priority", 0, "New priority")
	cmd.Flags().String("color", "", "New color")
	cmd.Flags().String("icon", "", "New icon")
	return cmd
}

func areasRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an area rule (the catch-all is protected)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			classifier := loadClassifier(ctx, store)
			if err := classifier.Remove(args[0]); err != nil {
				return err
			}

			saveRules(ctx, store, classifier)
			slog.Info(cli.FormatSuccess("Area rule removed"), "id", args[0])
			return nil
		},
	}
}

func areasResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in default rule set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			classifier := loadClassifier(ctx, store)
			classifier.ResetToDefaults()
			saveRules(ctx, store, classifier)
			slog.Info(cli.FormatSuccess("Area rules reset to defaults"))
			return nil
		},
	}
}

func areasImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <rules.json>",
		Short: "Replace the rule set from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read rules file: %w", err)
			}

			var rules []model.AreaRule
			if err := json.Unmarshal(data, &rules); err != nil {
				return fmt.Errorf("failed to parse rules file: %w", err)
			}

			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			classifier := loadClassifier(ctx, store)
			if err := classifier.Import(rules); err != nil {
				return err
			}

			saveRules(ctx, store, classifier)
			slog.Info(cli.FormatSuccess("Area rules imported"), "rules", len(rules))
			return nil
		},
	}
}

func areasExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [rules.json]",
		Short: "Export the rule set as JSON (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			classifier := loadClassifier(ctx, store)
			data, err := json.MarshalIndent(classifier.Export(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			data = append(data, '\n')

			if len(args) == 0 {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0600); err != nil {
				return fmt.Errorf("failed to write rules file: %w", err)
			}
			slog.Info(cli.FormatSuccess("Area rules exported"), "file", args[0])
			return nil
		},
	}
}
