package config

import (
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Feed is one configured source. In YAML it is either a bare URL string or
// a mapping with name, url and an optional authority weight.
type Feed struct {
	Name   string  `yaml:"name"`
	URL    string  `yaml:"url"`
	Weight float64 `yaml:"weight"`
}

func (f *Feed) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var u string
		if err := value.Decode(&u); err != nil {
			return err
		}
		f.URL = u
		f.Weight = 1.0
		return nil
	}

	type plain Feed
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*f = Feed(p)
	if f.Weight == 0 {
		f.Weight = 1.0
	}
	return nil
}

type Config struct {
	Feeds           []Feed             `yaml:"feeds"`
	DaysWindow      int                `yaml:"days_window"`
	MaxSummaryChars int                `yaml:"max_summary_chars"`
	KeywordWeights  map[string]float64 `yaml:"keyword_weights"`
	OutputDir       string             `yaml:"output_dir"`
	HTMLFile        string             `yaml:"html_file"`
	CSVFile         string             `yaml:"csv_file"`

	// JSON endpoint source; both endpoint and token required together
	GenEndpoint string `yaml:"-"`
	GenToken    string `yaml:"-"`

	// Runtime settings, environment only
	RequestTimeout   time.Duration `yaml:"-"`
	FetchConcurrency int           `yaml:"-"`
	WatchSchedule    string        `yaml:"-"`
	Debug            bool          `yaml:"-"`
}

// Load reads the YAML config file, applies environment overrides and
// validates the result. The returned Config is not mutated afterwards.
func Load(path string) (*Config, error) {
	cfg := &Config{
		// Default values
		DaysWindow:       7,
		MaxSummaryChars:  300,
		OutputDir:        "docs",
		HTMLFile:         "index.html",
		CSVFile:          "digest.csv",
		RequestTimeout:   20 * time.Second,
		FetchConcurrency: 5,
		WatchSchedule:    "0 6 * * *",
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Load from environment
	cfg.GenEndpoint = os.Getenv("GEN_ENDPOINT")
	cfg.GenToken = os.Getenv("GEN_TOKEN")

	if v := os.Getenv("DAYS_WINDOW"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.DaysWindow = val
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("FETCH_CONCURRENCY"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FetchConcurrency = val
		}
	}
	if v := os.Getenv("WATCH_SCHEDULE"); v != "" {
		cfg.WatchSchedule = v
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	for i := range cfg.Feeds {
		if cfg.Feeds[i].Name == "" {
			cfg.Feeds[i].Name = feedNameFromURL(cfg.Feeds[i].URL)
		}
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.DaysWindow <= 0 {
		return fmt.Errorf("days_window must be positive, got %d", c.DaysWindow)
	}
	if c.MaxSummaryChars <= 0 {
		return fmt.Errorf("max_summary_chars must be positive, got %d", c.MaxSummaryChars)
	}
	for _, f := range c.Feeds {
		if strings.TrimSpace(f.URL) == "" {
			return fmt.Errorf("feed %q has empty url", f.Name)
		}
		if f.Weight <= 0 || math.IsNaN(f.Weight) || math.IsInf(f.Weight, 0) {
			return fmt.Errorf("feed %q has invalid weight %v", f.Name, f.Weight)
		}
	}
	for kw, w := range c.KeywordWeights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("keyword %q has invalid weight %v", kw, w)
		}
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

// GenConfigured reports whether the JSON endpoint source is fully
// configured. Exactly one of endpoint/token set is incomplete: the source
// is skipped, never an error.
func (c *Config) GenConfigured() bool {
	return c.GenEndpoint != "" && c.GenToken != ""
}

// GenPartial reports the half-configured endpoint case, for a warning.
func (c *Config) GenPartial() bool {
	return (c.GenEndpoint != "") != (c.GenToken != "")
}

func feedNameFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Host, "www.")
}
