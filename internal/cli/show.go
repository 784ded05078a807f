package cli

import (
	"errors"
	"fmt"

	"github.com/pfrederiksen/sports-events/internal/calendar"
	"github.com/pfrederiksen/sports-events/internal/storage"
	"github.com/spf13/cobra"
)

var (
	flagShowCatalogue string
	flagShowICS       bool
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <event-id>",
		Short: "Print one event of a catalogue",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cmd.Flags().StringVar(&flagShowCatalogue, "catalogue", "", "Catalogue path (default: configured output)")
	cmd.Flags().BoolVar(&flagShowICS, "ics", false, "Print the event as an iCalendar file")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	path, err := catalogueArg([]string{flagShowCatalogue})
	if err != nil {
		return err
	}
	store, err := storage.New(path)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	evt, err := store.GetEventByID(args[0])
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no event %q in %s", args[0], store.Path())
	}
	if err != nil {
		return err
	}

	if flagShowICS {
		_, err := fmt.Fprint(cmd.OutOrStdout(), calendar.GenerateICS(evt, now()))
		return err
	}
	return writeJSON(cmd.OutOrStdout(), evt)
}
