package elevenlabs

import (
	"time"

	"github.com/kbukum/scribeproxy/util"
	"github.com/kbukum/scribeproxy/validation"
)

const (
	// DefaultBaseURL is the public ElevenLabs API root.
	DefaultBaseURL = "https://api.elevenlabs.io/v1"
	// DefaultModelID is the speech-to-text model sent with every request.
	DefaultModelID = "scribe_v2"
)

// Config holds configuration for the ElevenLabs provider.
type Config struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	// APIKey is sent as the xi-api-key header. It may be empty at startup;
	// requests are then rejected with a configuration error.
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	ModelID string        `yaml:"model_id" mapstructure:"model_id" validate:"required"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
}

// ApplyDefaults fills zero values and cleans up the API key, which is often
// pasted into .env files with quotes or trailing whitespace.
func (c *Config) ApplyDefaults() {
	c.BaseURL = util.Coalesce(c.BaseURL, DefaultBaseURL)
	c.ModelID = util.Coalesce(c.ModelID, DefaultModelID)
	c.APIKey = util.SanitizeEnvValue(c.APIKey)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// HasAPIKey reports whether a credential is configured.
func (c *Config) HasAPIKey() bool { return c.APIKey != "" }
