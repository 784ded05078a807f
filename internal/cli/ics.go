package cli

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/sports-events/internal/calendar"
	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/spf13/cobra"
)

var (
	flagICSOutput string
	flagICSName   string
)

func newICSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics [catalogue.json]",
		Short: "Export catalogue events as an iCalendar file",
		Long: `Write the events of a catalogue as all-day iCalendar events. The filter
flags of list apply here too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runICS,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringVar(&flagICSOutput, "output", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&flagICSName, "name", "Sports Events", "Calendar name")
	return cmd
}

func runICS(cmd *cobra.Command, args []string) error {
	path, err := catalogueArg(args)
	if err != nil {
		return err
	}
	events, _, err := loadFiltered(path)
	if err != nil {
		return err
	}
	event.SortByDate(events)

	ics := calendar.GenerateBulkICS(events, flagICSName, now())

	if flagICSOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), ics)
		return err
	}
	if err := os.WriteFile(flagICSOutput, []byte(ics), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d events to %s\n", len(events), flagICSOutput)
	return nil
}
