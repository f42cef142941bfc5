package observability

import (
	"time"

	"github.com/kbukum/scribeproxy/validation"
)

// Config controls OpenTelemetry export. Disabled leaves the global no-op
// providers in place, so spans and instruments cost nothing.
type Config struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint        string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure        bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate      float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricsInterval time.Duration `yaml:"metrics_interval" mapstructure:"metrics_interval"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricsInterval == 0 {
		c.MetricsInterval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	v := validation.New()
	if c.Enabled {
		v.Required("observability.endpoint", c.Endpoint)
	}
	v.Custom(c.SampleRate >= 0 && c.SampleRate <= 1, "observability.sample_rate", "must be between 0 and 1")
	v.Custom(c.MetricsInterval >= 0, "observability.metrics_interval", "must not be negative")
	return v.Validate()
}
