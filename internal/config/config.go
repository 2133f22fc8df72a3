package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the optional config file read from the working directory.
// The tool takes no CLI flags; a missing file means pure defaults.
const DefaultPath = "chinacal.yaml"

// Config holds every tunable of the generator. The defaults reproduce the
// published feed; a chinacal.yaml can override them for development runs.
type Config struct {
	// DataURL is the chinese-days dataset endpoint.
	DataURL string `yaml:"data_url"`

	// DataFile is the local fallback copy of the dataset.
	DataFile string `yaml:"data_file"`

	// TraditionalCacheFile persists the expensive lunar computation,
	// keyed by the configured year range.
	TraditionalCacheFile string `yaml:"traditional_cache_file"`

	// OutputFile is the published iCalendar document.
	OutputFile string `yaml:"output_file"`

	// StartYear / EndYear bound the traditional-event computation,
	// inclusive on both ends.
	StartYear int `yaml:"start_year"`
	EndYear   int `yaml:"end_year"`

	// WorkdayWindowDays is how far around a holiday block compensatory
	// workdays are searched. The published dataset always places them
	// adjacent to the block; the window is a heuristic, not an invariant.
	WorkdayWindowDays int `yaml:"workday_window_days"`

	// FetchTimeoutSeconds bounds the dataset HTTP request.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`

	// RefreshCron is a cron-style schedule (e.g. "0 6 * * *") for
	// repeated regeneration. Empty means run once and exit.
	RefreshCron string `yaml:"refresh"`
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() *Config {
	return &Config{
		DataURL:              "https://cdn.jsdelivr.net/npm/chinese-days/dist/chinese-days.json",
		DataFile:             "chinese-days.json",
		TraditionalCacheFile: "traditional_cache.json",
		OutputFile:           "chinese_holidays.ics",
		StartYear:            2025,
		EndYear:              2050,
		WorkdayWindowDays:    20,
		FetchTimeoutSeconds:  30,
		RefreshCron:          "",
	}
}

// Normalize fills zero values with defaults so a partial config file still
// behaves correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.DataURL == "" {
		c.DataURL = def.DataURL
	}
	if c.DataFile == "" {
		c.DataFile = def.DataFile
	}
	if c.TraditionalCacheFile == "" {
		c.TraditionalCacheFile = def.TraditionalCacheFile
	}
	if c.OutputFile == "" {
		c.OutputFile = def.OutputFile
	}
	if c.StartYear <= 0 {
		c.StartYear = def.StartYear
	}
	if c.EndYear <= 0 {
		c.EndYear = def.EndYear
	}
	if c.EndYear < c.StartYear {
		c.EndYear = c.StartYear
	}
	if c.WorkdayWindowDays <= 0 {
		c.WorkdayWindowDays = def.WorkdayWindowDays
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
}

// FetchTimeout returns the dataset request timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Load loads configuration from the given YAML path. A missing file is not
// an error: the tool is a scheduled batch job and must not create config
// as a side effect, so it simply runs with defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}
