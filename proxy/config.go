package proxy

import (
	"github.com/kbukum/scribeproxy/util"
	"github.com/kbukum/scribeproxy/validation"
)

const (
	defaultMaxUploadSize  = "100MB"
	defaultMaxUploadBytes = 100 * 1024 * 1024
)

// Config holds configuration for the transcription endpoints.
type Config struct {
	// MaxUploadSize caps the audio upload ("100MB", "512KB").
	MaxUploadSize string `yaml:"max_upload_size" mapstructure:"max_upload_size"`
	// RoutePath is where the gin-routed handler is mounted.
	RoutePath string `yaml:"route_path" mapstructure:"route_path" validate:"required,startswith=/"`
	// StreamDisabled leaves POST / unmounted.
	StreamDisabled bool `yaml:"stream_disabled" mapstructure:"stream_disabled"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	c.MaxUploadSize = util.Coalesce(c.MaxUploadSize, defaultMaxUploadSize)
	c.RoutePath = util.Coalesce(c.RoutePath, "/api/transcribe")
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	v.Custom(util.ParseSize(c.MaxUploadSize, -1) > 0, "proxy.max_upload_size", "must be a positive size such as 100MB")
	return v.Validate()
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return util.ParseSize(c.MaxUploadSize, defaultMaxUploadBytes)
}
