package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pfrederiksen/sports-events/internal/config"
	"github.com/pfrederiksen/sports-events/internal/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitChanges = 2
)

// errChanges is returned by diff when the catalogues differ. Execute maps it
// to ExitChanges.
var errChanges = errors.New("catalogue changed")

var (
	flagConfig   string
	flagVerbose  bool
	flagLogLevel string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sports-events",
		Short: "Aggregate combat, endurance and strength events into one catalogue",
		Long: `A CLI tool that scrapes sports event listings (HYROX, running races,
jiu-jitsu and grappling competitions), normalizes them into one validated
catalogue and writes it as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logger.ParseLevel(flagLogLevel)
			if err != nil {
				return err
			}
			if flagVerbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (default: built-in sources)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")

	cmd.AddCommand(newScrapeCmd(), newListCmd(), newICSCmd(), newDiffCmd(), newShowCmd())
	return cmd
}

// loadConfig returns the config named by --config, or the built-in one.
func loadConfig() (*config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// catalogueArg returns the catalogue path from args, falling back to the
// configured output.
func catalogueArg(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Output, nil
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, errChanges):
		os.Exit(ExitChanges)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
