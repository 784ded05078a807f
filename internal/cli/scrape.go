package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/sports-events/internal/aggregator"
	"github.com/pfrederiksen/sports-events/internal/config"
	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/fetch"
	"github.com/pfrederiksen/sports-events/internal/logger"
	"github.com/pfrederiksen/sports-events/internal/metrics"
	"github.com/pfrederiksen/sports-events/internal/publish"
	"github.com/pfrederiksen/sports-events/internal/storage"
	"github.com/spf13/cobra"
)

var (
	flagOutput      string
	flagParallel    bool
	flagPublish     bool
	flagMetricsFile string
	flagScrapeDiff  bool
	flagScrapeFmt   string
)

// uploader is the part of publish.Uploader used by scrape.
type uploader interface {
	Upload(ctx context.Context, events []*event.Event) (*publish.UploadResult, error)
}

// newUploader is replaced in tests.
var newUploader = func(ctx context.Context, cfg publish.S3Config) (uploader, error) {
	return publish.NewUploader(ctx, cfg)
}

// ScrapeReport is what scrape prints after a run.
type ScrapeReport struct {
	RunID     string                    `json:"run_id"`
	Output    string                    `json:"output"`
	Events    int                       `json:"events"`
	Summary   aggregator.Summary        `json:"summary"`
	Sources   []aggregator.SourceReport `json:"sources"`
	Diff      *event.DiffResult         `json:"diff,omitempty"`
	Published *publish.UploadResult     `json:"published,omitempty"`
}

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run every enabled source and write the catalogue",
		Long: `Fetch every enabled source, validate the candidates and write the
merged catalogue, sorted by start date, to the output file. A failing
source contributes no events but does not stop the run.`,
		Args: cobra.NoArgs,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagOutput, "output", "", "Catalogue path (overrides config)")
	cmd.Flags().BoolVar(&flagParallel, "parallel", false, "Run sources concurrently")
	cmd.Flags().BoolVar(&flagPublish, "publish", false, "Upload the catalogue to the configured S3 bucket")
	cmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile (overrides config)")
	cmd.Flags().BoolVar(&flagScrapeDiff, "diff", false, "Report changes against the previous catalogue")
	cmd.Flags().StringVar(&flagScrapeFmt, "format", "text", "Report format: text or json")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagScrapeFmt)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagOutput != "" {
		cfg.Output = flagOutput
	}
	if flagParallel {
		cfg.Parallel = true
	}
	if flagMetricsFile != "" {
		cfg.MetricsFile = flagMetricsFile
	}

	log := logger.Default()

	sources, err := cfg.AggregatorSources()
	if err != nil {
		return fmt.Errorf("building sources: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no enabled sources")
	}

	store, err := storage.New(cfg.Output)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := aggregator.Options{
		Fetcher:     fetch.NewHTTP(cfg.Timeout, cfg.UserAgent),
		Parallel:    cfg.Parallel,
		MaxParallel: cfg.MaxParallel,
		Log:         log,
		Metrics:     logger.DefaultMetrics(),
	}
	if needsRenderer(sources) {
		r := fetch.NewRenderer(cfg.SettleDelay, cfg.Timeout, cfg.UserAgent)
		defer r.Close()
		opts.Renderer = r
	}

	log.Info("starting run", logger.Fields{
		"sources":  len(sources),
		"parallel": cfg.Parallel,
		"output":   store.Path(),
	})

	result, err := aggregator.New(sources, opts).Run(ctx)
	if err != nil {
		return err
	}

	log.Debug("run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})

	report := &ScrapeReport{
		RunID:   result.RunID,
		Output:  store.Path(),
		Events:  len(result.Events),
		Summary: result.Summary,
		Sources: result.Sources,
	}

	if flagScrapeDiff {
		previous, err := store.Load()
		if err != nil {
			log.Warn("previous catalogue unreadable, skipping diff", logger.Fields{"path": store.Path()}, err)
		} else {
			report.Diff = event.Diff(previous, result.Events)
		}
	}

	if err := store.Save(result.Events); err != nil {
		return fmt.Errorf("saving catalogue: %w", err)
	}
	log.Info("catalogue written", logger.Fields{"path": store.Path(), "events": len(result.Events)})

	if cfg.MetricsFile != "" {
		if err := writeMetrics(cfg.MetricsFile, result); err != nil {
			log.Warn("metrics not written", logger.Fields{"path": cfg.MetricsFile}, err)
		}
	}

	if flagPublish {
		published, err := publishCatalogue(ctx, cfg.Publish, result.Events)
		if err != nil {
			return err
		}
		report.Published = published
		log.Info("catalogue published", logger.Fields{"bucket": published.Bucket, "key": published.Key})
	}

	return WriteScrapeReport(cmd.OutOrStdout(), report, format)
}

func needsRenderer(sources []aggregator.Source) bool {
	for _, s := range sources {
		if s.Render {
			return true
		}
	}
	return false
}

func writeMetrics(path string, result *aggregator.Result) error {
	c := metrics.New()
	c.Record(result, time.Now())
	return c.WriteFile(path)
}

func publishCatalogue(ctx context.Context, p config.Publish, events []*event.Event) (*publish.UploadResult, error) {
	if !p.Enabled() {
		return nil, fmt.Errorf("--publish requires publish.s3_bucket in the config")
	}
	up, err := newUploader(ctx, publish.S3Config{
		Bucket:       p.S3Bucket,
		Key:          p.S3Key,
		Region:       p.Region,
		Profile:      p.Profile,
		CacheControl: p.CacheControl,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing S3 uploader: %w", err)
	}
	res, err := up.Upload(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("publishing catalogue: %w", err)
	}
	return res, nil
}
