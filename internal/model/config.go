package model

import "time"

// Config is the full runtime configuration. Values resolve in the usual
// hierarchy: CLI flags, then CAPFRAME_* environment variables, then the
// config file, then the defaults below.
type Config struct {
	Ontology    OntologyConfig    `yaml:"ontology" mapstructure:"ontology"`
	Thresholds  ThresholdConfig   `yaml:"thresholds" mapstructure:"thresholds"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// OntologyConfig holds the lookup tables the Entity Quality Validator consults.
// Operators grow these lists in the config file without a rebuild; entries here
// are merged on top of the built-in tables.
type OntologyConfig struct {
	GenericTerms []string `yaml:"generic_terms" mapstructure:"generic_terms"`
	Places       []string `yaml:"places" mapstructure:"places"`
	Investors    []string `yaml:"investors" mapstructure:"investors"`
}

// ThresholdConfig tunes confidence gating.
type ThresholdConfig struct {
	// GraphSafe is the minimum frame confidence for relationship-edge creation
	// downstream. Below it the event is still accepted with fallback_used set.
	GraphSafe float64 `yaml:"graph_safe" mapstructure:"graph_safe"`
}

// ConcurrencyConfig tunes batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
	// PublisherRate caps emitted events per second per publisher during batch
	// runs; zero disables the limiter.
	PublisherRate  float64 `yaml:"publisher_rate" mapstructure:"publisher_rate"`
	PublisherBurst int     `yaml:"publisher_burst" mapstructure:"publisher_burst"`
}

// CacheConfig tunes the batch-run memoization cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig tunes CLI output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Ontology: OntologyConfig{},
		Thresholds: ThresholdConfig{
			GraphSafe: 0.8,
		},
		Concurrency: ConcurrencyConfig{
			Workers:        8,
			PublisherRate:  0,
			PublisherBurst: 5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Output: OutputConfig{
			Verbose: false,
			Pretty:  true,
		},
	}
}
