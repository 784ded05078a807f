package cli

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/filter"
	"github.com/pfrederiksen/sports-events/internal/storage"
	"github.com/spf13/cobra"
)

var (
	flagSports      string
	flagCategories  string
	flagCountries   string
	flagCities      string
	flagFederations string
	flagTitles      string
	flagDates       string
	flagWeekends    bool
	flagUpcoming    bool
	flagDaysAhead   int
	flagSort        string
	flagListFormat  string
	flagListVerbose bool
)

// now is replaced in tests.
var now = time.Now

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [catalogue.json]",
		Short: "Print events from a written catalogue",
		Long: `Read a catalogue written by scrape and print the events matching the
given filters. Values within one flag are comma-separated and combine with
OR; different flags combine with AND.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runList,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByDate), "Sort order: date, title or country")
	cmd.Flags().StringVar(&flagListFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagListVerbose, "details", false, "Show ID, federation and link for each event")
	return cmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSports, "sport", "", "Sport tags, e.g. jjb,grappling")
	cmd.Flags().StringVar(&flagCategories, "category", "", "Categories: combat, endurance, force")
	cmd.Flags().StringVar(&flagCountries, "country", "", "Countries, e.g. France,Spain")
	cmd.Flags().StringVar(&flagCities, "city", "", "City substrings")
	cmd.Flags().StringVar(&flagFederations, "federation", "", "Federations, e.g. IBJJF,ADCC")
	cmd.Flags().StringVar(&flagTitles, "title", "", "Title substrings")
	cmd.Flags().StringVar(&flagDates, "dates", "", "Date range, e.g. 'Mar 1-15', 'March' or '2025-03-01..2025-04-15'")
	cmd.Flags().BoolVar(&flagWeekends, "weekends", false, "Only events starting on a Saturday or Sunday")
	cmd.Flags().BoolVar(&flagUpcoming, "upcoming", false, "Hide events that already started")
	cmd.Flags().IntVar(&flagDaysAhead, "days-ahead", 0, "Only events starting within N days (0 = disabled)")
}

// buildFilter turns the filter flags into a Filter.
func buildFilter(at time.Time) (*filter.Filter, error) {
	f := filter.NewFilter()

	var err error
	if f.Sports, err = filter.ParseSports(flagSports); err != nil {
		return nil, err
	}
	if f.Categories, err = filter.ParseCategories(flagCategories); err != nil {
		return nil, err
	}
	f.Countries = filter.ParseList(flagCountries)
	f.Cities = filter.ParseList(flagCities)
	f.Federations = filter.ParseList(flagFederations)
	f.Titles = filter.ParseList(flagTitles)
	f.WeekendsOnly = flagWeekends

	if flagDates != "" {
		from, to, err := filter.ParseDateRangeAt(flagDates, at)
		if err != nil {
			return nil, fmt.Errorf("invalid --dates: %w", err)
		}
		f.DateFrom, f.DateTo = from, to
	}
	f.HidePast = flagUpcoming
	f.DaysAhead = flagDaysAhead
	f.Now = at
	return f, nil
}

// loadFiltered reads the catalogue at path and applies the filter flags.
func loadFiltered(path string) ([]*event.Event, *filter.Filter, error) {
	f, err := buildFilter(now())
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.New(path)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}
	events, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return f.Apply(events), f, nil
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagListFormat)
	if err != nil {
		return err
	}
	order, err := parseSortOrder(flagSort)
	if err != nil {
		return err
	}
	path, err := catalogueArg(args)
	if err != nil {
		return err
	}

	events, f, err := loadFiltered(path)
	if err != nil {
		return err
	}
	sortEvents(events, order)

	result := &ListResult{
		Filter: f,
		Events: events,
		Count:  len(events),
	}
	if err := WriteList(cmd.OutOrStdout(), result, format, flagListVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
