package cli

import (
	"fmt"

	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/storage"
	"github.com/spf13/cobra"
)

var (
	flagDiffFormat string
	flagDiffExit   bool
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <previous.json> <current.json>",
		Short: "Compare two catalogues",
		Long: `Report events added, removed or changed between two catalogues, matched
by event ID. With --exit-code the command exits with status 2 when the
catalogues differ.`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}
	cmd.Flags().StringVar(&flagDiffFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagDiffExit, "exit-code", false, "Exit with status 2 when catalogues differ")
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagDiffFormat)
	if err != nil {
		return err
	}

	previous, err := loadCatalogue(args[0])
	if err != nil {
		return err
	}
	current, err := loadCatalogue(args[1])
	if err != nil {
		return err
	}

	diff := event.Diff(previous, current)
	if err := WriteDiff(cmd.OutOrStdout(), diff, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if flagDiffExit && !diff.Empty() {
		return errChanges
	}
	return nil
}

func loadCatalogue(path string) ([]*event.Event, error) {
	store, err := storage.New(path)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store.Load()
}
