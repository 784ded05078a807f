package aggregator

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/sports-events/internal/event"
	"github.com/pfrederiksen/sports-events/internal/fetch"
	"github.com/pfrederiksen/sports-events/internal/logger"
	"github.com/pfrederiksen/sports-events/internal/parse"
	"github.com/pfrederiksen/sports-events/internal/scraper"
	"golang.org/x/sync/errgroup"
)

// Source is one configured site.
type Source struct {
	Name string
	URL  string
	// Render fetches the listing through the headless renderer.
	Render    bool
	Extractor scraper.Extractor
	// DateFallback applies when a candidate's date text cannot be parsed.
	DateFallback parse.Fallback
}

// Options configures a run.
type Options struct {
	// Fetcher retrieves plain listing pages and strict detail pages.
	Fetcher fetch.Fetcher
	// Renderer retrieves listings of sources with Render set. When nil,
	// Fetcher is used instead.
	Renderer fetch.Fetcher
	Parallel bool
	// MaxParallel bounds concurrent sources in parallel mode; zero means no limit.
	MaxParallel int

	Now     func() time.Time
	Log     *logger.Logger
	Metrics *logger.Metrics
	Sleep   func(ctx context.Context, d time.Duration) error
}

// SourceReport describes the outcome of one source.
type SourceReport struct {
	Name       string        `json:"name"`
	Candidates int           `json:"candidates"`
	Events     int           `json:"events"`
	Dropped    int           `json:"dropped"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}

// Failed reports whether the source contributed nothing because of an error.
func (r SourceReport) Failed() bool { return r.Error != "" }

// Result is the outcome of a run.
type Result struct {
	RunID   string         `json:"run_id"`
	Events  []*event.Event `json:"events"`
	Summary Summary        `json:"summary"`
	Sources []SourceReport `json:"sources"`
}

// Aggregator runs a fixed list of sources.
type Aggregator struct {
	sources []Source
	opts    Options
}

// New creates an Aggregator. Sources run, and their events merge, in the
// order given.
func New(sources []Source, opts Options) *Aggregator {
	return &Aggregator{sources: sources, opts: opts}
}

// Run executes every source and returns the merged catalogue. Source
// failures are reported in Result.Sources, not as an error; Run only fails
// when ctx is done before the run completes.
func (a *Aggregator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := a.log().With(logger.Fields{"run_id": runID})
	start := time.Now()

	type outcome struct {
		events []*event.Event
		report SourceReport
	}
	outcomes := make([]outcome, len(a.sources))

	if a.opts.Parallel {
		var g errgroup.Group
		if a.opts.MaxParallel > 0 {
			g.SetLimit(a.opts.MaxParallel)
		}
		for i, src := range a.sources {
			i, src := i, src
			g.Go(func() error {
				events, report := a.runSource(ctx, src, log)
				outcomes[i] = outcome{events, report}
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, src := range a.sources {
			if ctx.Err() != nil {
				break
			}
			events, report := a.runSource(ctx, src, log)
			outcomes[i] = outcome{events, report}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run interrupted: %w", err)
	}

	result := &Result{RunID: runID, Events: make([]*event.Event, 0)}
	for _, o := range outcomes {
		result.Events = append(result.Events, o.events...)
		result.Sources = append(result.Sources, o.report)
	}
	event.SortByDate(result.Events)
	result.Summary = Summarize(result.Events)

	a.metrics().RecordTiming("run.duration", time.Since(start))
	a.metrics().SetGauge("catalogue.events", float64(len(result.Events)))
	log.Info("run complete", logger.Fields{
		"events":      len(result.Events),
		"sources":     len(a.sources),
		"by_category": result.Summary.ByCategory,
		"by_sport":    result.Summary.BySport,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return result, nil
}

// runSource fetches, extracts and normalizes one source. It never panics.
func (a *Aggregator) runSource(ctx context.Context, src Source, parent *logger.Logger) (events []*event.Event, report SourceReport) {
	log := parent.With(logger.Fields{"source": src.Name})
	report.Name = src.Name
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("extractor panic: %v", r)
			log.Error("source failed", logger.Fields{"stack": string(debug.Stack())}, err)
			events = nil
			report.Events = 0
			report.Error = err.Error()
			a.metrics().IncrCounter(counter(src.Name, "failed"))
		}
		report.Duration = time.Since(start)
		a.metrics().RecordTiming(counter(src.Name, "duration"), report.Duration)
	}()

	candidates, err := a.extract(ctx, src, log)
	if err != nil {
		report.Error = err.Error()
		a.metrics().IncrCounter(counter(src.Name, "failed"))
		return nil, report
	}
	report.Candidates = len(candidates)

	policy := event.Policy{Now: a.opts.Now, DateFallback: src.DateFallback}
	for _, c := range candidates {
		if c.Source == "" {
			c.Source = src.Name
		}
		evt, err := event.Normalize(c, policy)
		if err != nil {
			report.Dropped++
			log.Debug("candidate dropped", logger.Fields{"title": c.Title, "link": c.Link, "reason": err.Error()})
			continue
		}
		events = append(events, evt)
	}
	report.Events = len(events)

	a.metrics().AddCounter(counter(src.Name, "events"), int64(report.Events))
	a.metrics().AddCounter(counter(src.Name, "dropped"), int64(report.Dropped))
	log.Info("source complete", logger.Fields{
		"candidates": report.Candidates,
		"events":     report.Events,
		"dropped":    report.Dropped,
	})
	return events, report
}

func (a *Aggregator) extract(ctx context.Context, src Source, log *logger.Logger) ([]event.Candidate, error) {
	if src.Extractor == nil {
		err := fmt.Errorf("source %s has no extractor", src.Name)
		log.Error("source failed", nil, err)
		return nil, err
	}

	fetcher := a.opts.Fetcher
	if src.Render {
		if a.opts.Renderer != nil {
			fetcher = a.opts.Renderer
		} else {
			log.Debug("no renderer configured, fetching without rendering", nil)
		}
	}
	if fetcher == nil {
		err := fmt.Errorf("source %s: no fetcher configured", src.Name)
		log.Error("source failed", nil, err)
		return nil, err
	}

	doc, err := fetcher.Fetch(ctx, src.URL)
	if err != nil {
		log.Warn("listing fetch failed", logger.Fields{"url": src.URL}, err)
		return nil, fmt.Errorf("fetching %s: %w", src.URL, err)
	}

	env := scraper.Env{
		Source:  src.Name,
		PageURL: src.URL,
		Fetcher: a.opts.Fetcher,
		Now:     a.opts.Now,
		Log:     log,
		Metrics: a.opts.Metrics,
		Sleep:   a.opts.Sleep,
	}
	candidates, err := src.Extractor.Extract(ctx, doc, env)
	if err != nil {
		log.Error("extractor failed", logger.Fields{"partial": len(candidates)}, err)
		return nil, fmt.Errorf("extracting %s: %w", src.Name, err)
	}
	return candidates, nil
}

func (a *Aggregator) log() *logger.Logger {
	if a.opts.Log != nil {
		return a.opts.Log
	}
	return logger.Default()
}

func (a *Aggregator) metrics() *logger.Metrics {
	if a.opts.Metrics != nil {
		return a.opts.Metrics
	}
	return logger.DefaultMetrics()
}

func counter(source, stat string) string {
	return "source." + source + "." + stat
}
