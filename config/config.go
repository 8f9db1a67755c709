// Package config defines the pathknn run configuration and its YAML loader.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/viant/pathknn/knn"
	"github.com/viant/pathknn/source"
	"github.com/viant/pathknn/vector"
)

// Default locations of the original slide and report datasets.
const (
	DefaultReferenceLocation = "tcgaSlideEmbeddings.json.zip"
	DefaultReferenceMember   = "tcgaSlideEmbeddings.json"
	DefaultQueriesLocation   = "tcgaPathReports.json.zip"
	DefaultQueriesMember     = "tcgaPathReports.json"
)

// Config is a classification run.
type Config struct {
	K         int            `yaml:"k"`
	Metric    vector.Metric  `yaml:"metric"`
	Workers   int            `yaml:"workers"`
	Reference source.Dataset `yaml:"reference"`
	Queries   source.Dataset `yaml:"queries"`
	Fetch     Fetch          `yaml:"fetch"`
	Store     Store          `yaml:"store"`
}

// Fetch tunes how datasets are downloaded.
type Fetch struct {
	MaxRetries int           `yaml:"maxRetries"`
	BaseDelay  time.Duration `yaml:"baseDelay"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Store selects the optional SQLite database; an empty DSN disables it.
type Store struct {
	DSN string `yaml:"dsn"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		K:      knn.DefaultK,
		Metric: vector.DefaultMetric,
		Reference: source.Dataset{
			Location: DefaultReferenceLocation,
			Member:   DefaultReferenceMember,
			Field:    source.ReferenceField,
		},
		Queries: source.Dataset{
			Location: DefaultQueriesLocation,
			Member:   DefaultQueriesMember,
			Field:    source.QueryField,
		},
		Fetch: Fetch{
			MaxRetries: source.DefaultMaxRetries,
			BaseDelay:  source.DefaultBaseDelay,
			Timeout:    30 * time.Second,
		},
	}
}

// Load reads path on top of Default, expands ${VAR} references and validates
// the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.ExpandEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// ExpandEnv replaces ${VAR} and $VAR in dataset locations and the DSN.
func (c *Config) ExpandEnv() {
	c.Reference.Location = os.ExpandEnv(c.Reference.Location)
	c.Queries.Location = os.ExpandEnv(c.Queries.Location)
	c.Store.DSN = os.ExpandEnv(c.Store.DSN)
}

// Validate checks the run parameters.
func (c *Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("k must be greater than 0, got %d", c.K)
	}
	metric, err := vector.ParseMetric(string(c.Metric))
	if err != nil {
		return err
	}
	c.Metric = metric
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}
	if c.Reference.Location == "" {
		return fmt.Errorf("reference: location is required")
	}
	if c.Queries.Location == "" {
		return fmt.Errorf("queries: location is required")
	}
	if c.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch: maxRetries must be non-negative")
	}
	if c.Fetch.BaseDelay < 0 || c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch: durations must be non-negative")
	}
	return nil
}
