package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/sports-events/internal/event"
	"gopkg.in/yaml.v3"
)

// Kind selects the extraction strategy of a source.
type Kind string

const (
	KindAnchor  Kind = "anchor"
	KindCards   Kind = "cards"
	KindPayload Kind = "payload"
	KindStrict  Kind = "strict"
)

// Defaults applied by Load and Default.
const (
	DefaultOutput         = "events.json"
	DefaultTimeout        = 30 * time.Second
	DefaultSettleDelay    = 3 * time.Second
	DefaultDateOffsetDays = 90
	DefaultPaceEvery      = 5
	DefaultPaceDelay      = time.Second
	DefaultCacheControl   = "public, max-age=3600"
)

// ErrInvalid is wrapped by every validation error returned from Validate.
var ErrInvalid = errors.New("invalid config")

// Policies are the run-wide fallbacks applied when a source config omits them.
type Policies struct {
	// DefaultDateOffsetDays dates undated anchor-list events this many days ahead.
	DefaultDateOffsetDays int           `yaml:"default_date_offset_days"`
	// PaceEvery and PaceDelay pause strict sources for PaceDelay after every
	// PaceEvery detail fetches.
	PaceEvery             int           `yaml:"pace_every"`
	PaceDelay             time.Duration `yaml:"pace_delay"`
}

// Selectors override the CSS selectors of a cards source. Empty fields keep
// the extractor defaults.
type Selectors struct {
	Card     string `yaml:"card"`
	Exclude  string `yaml:"exclude"`
	Row      string `yaml:"row"`
	Name     string `yaml:"name"`
	Date     string `yaml:"date"`
	Location string `yaml:"location"`
	// Payload is the script element holding an embedded JSON payload.
	Payload string `yaml:"payload"`
}

// Source configures one listing and the extractor Kind that reads it.
type Source struct {
	Name    string `yaml:"name"`
	Kind    Kind   `yaml:"kind"`
	URL     string `yaml:"url"`
	Render  bool   `yaml:"render"`
	Enabled *bool  `yaml:"enabled"`

	HrefMarker      string         `yaml:"href_marker"`
	ExcludeClass    string         `yaml:"exclude_class"`
	TitlePrefix     string         `yaml:"title_prefix"`
	Category        event.Category `yaml:"category"`
	SportTag        event.SportTag `yaml:"sport_tag"`
	Federation      string         `yaml:"federation"`
	GeoFilter       bool           `yaml:"geo_filter"`
	ClassifyRunning bool           `yaml:"classify_running"`
	ParentFields    bool           `yaml:"parent_fields"`
	EventPath       string         `yaml:"event_path"`
	// DateOffsetDays is the fallback for undated or unparseable dates.
	// Zero means the day of the run.
	DateOffsetDays int       `yaml:"date_offset_days"`
	Selectors      Selectors `yaml:"selectors"`
}

// IsEnabled reports whether the source runs. Sources are enabled unless
// explicitly disabled.
func (s Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

type Publish struct {
	S3Bucket     string `yaml:"s3_bucket"`
	S3Key        string `yaml:"s3_key"`
	Region       string `yaml:"region"`
	Profile      string `yaml:"profile"`
	CacheControl string `yaml:"cache_control"`
}

// Enabled reports whether a publish target is configured.
func (p Publish) Enabled() bool { return p.S3Bucket != "" }

type Config struct {
	Output      string        `yaml:"output"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	SettleDelay time.Duration `yaml:"settle_delay"`
	Parallel    bool          `yaml:"parallel"`
	MaxParallel int           `yaml:"max_parallel"`
	MetricsFile string        `yaml:"metrics_file"`

	Policies Policies `yaml:"policies"`
	Sources  []Source `yaml:"sources"`
	Publish  Publish  `yaml:"publish"`
}

// Load reads a YAML config file, applies defaults and validates it. A file
// without a sources list runs the built-in sources.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML config data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.Policies.DefaultDateOffsetDays == 0 {
		c.Policies.DefaultDateOffsetDays = DefaultDateOffsetDays
	}
	if c.Policies.PaceEvery == 0 {
		c.Policies.PaceEvery = DefaultPaceEvery
	}
	if c.Policies.PaceDelay == 0 {
		c.Policies.PaceDelay = DefaultPaceDelay
	}
	if c.Publish.CacheControl == "" {
		c.Publish.CacheControl = DefaultCacheControl
	}
	if c.Publish.S3Key == "" {
		c.Publish.S3Key = filepath.Base(c.Output)
	}
	if len(c.Sources) == 0 {
		c.Sources = DefaultSources(c.Policies)
	}
}

// Validate reports the first problem found in the configuration.
func (c *Config) Validate() error {
	if c.Timeout < 0 || c.SettleDelay < 0 || c.Policies.PaceDelay < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalid)
	}
	if c.MaxParallel < 0 {
		return fmt.Errorf("%w: max_parallel must not be negative", ErrInvalid)
	}

	seen := make(map[string]bool)
	for i, s := range c.Sources {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("%w: source %d has no name", ErrInvalid, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate source %q", ErrInvalid, name)
		}
		seen[name] = true

		switch s.Kind {
		case KindAnchor, KindCards, KindPayload, KindStrict:
		default:
			return fmt.Errorf("%w: source %q has unknown kind %q", ErrInvalid, name, s.Kind)
		}
		if strings.TrimSpace(s.URL) == "" {
			return fmt.Errorf("%w: source %q has no url", ErrInvalid, name)
		}
		if s.Category != "" && !s.Category.Valid() {
			return fmt.Errorf("%w: source %q has unknown category %q", ErrInvalid, name, s.Category)
		}
		if s.SportTag != "" && !s.SportTag.Valid() {
			return fmt.Errorf("%w: source %q has unknown sport_tag %q", ErrInvalid, name, s.SportTag)
		}
		if (s.Kind == KindAnchor || s.Kind == KindCards) && (s.Category == "" || (s.SportTag == "" && !s.ClassifyRunning)) {
			return fmt.Errorf("%w: source %q needs category and sport_tag", ErrInvalid, name)
		}
	}
	return nil
}

// EnabledSources returns the sources that will run, in configured order.
func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.IsEnabled() {
			out = append(out, s)
		}
	}
	return out
}
