// Command scribeproxy forwards audio uploads to the ElevenLabs speech-to-text
// API and relays the transcription.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kbukum/scribeproxy/bootstrap"
	"github.com/kbukum/scribeproxy/config"
	"github.com/kbukum/scribeproxy/logger"
	"github.com/kbukum/scribeproxy/observability"
	"github.com/kbukum/scribeproxy/proxy"
	"github.com/kbukum/scribeproxy/server"
	"github.com/kbukum/scribeproxy/transcription/elevenlabs"
)

const serviceName = "scribeproxy"

// AppConfig is the full service configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	HTTP          server.Config        `yaml:"http" mapstructure:"http"`
	Proxy         proxy.Config         `yaml:"proxy" mapstructure:"proxy"`
	ElevenLabs    elevenlabs.Config    `yaml:"elevenlabs" mapstructure:"elevenlabs"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.HTTP.ApplyDefaults()
	c.Proxy.ApplyDefaults()
	c.ElevenLabs.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section. A missing API key is not an error here;
// requests are answered with a configuration error instead.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := c.Proxy.Validate(); err != nil {
		return fmt.Errorf("proxy: %w", err)
	}
	if err := c.ElevenLabs.Validate(); err != nil {
		return fmt.Errorf("elevenlabs: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		// The configured logger may not exist yet.
		logger.NewFromEnv(serviceName).Error("Service exited with error", logger.ErrorFields("run", err))
		os.Exit(1)
	}
}

func run() error {
	cfg := AppConfig{ServiceConfig: config.ServiceConfig{Name: serviceName}}
	if err := config.LoadConfig(serviceName, &cfg,
		config.WithEnvBinding("http.port", "PORT"),
		config.WithEnvBinding("elevenlabs.api_key", "ELEVENLABS_API_KEY"),
		config.WithEnvBinding("logging.level", "LOG_LEVEL"),
	); err != nil {
		return err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	app.OnConfigure(configure)
	return app.Run(context.Background())
}

// configure builds the provider, the HTTP surface and registers components in
// start order: telemetry, upstream provider, then the server.
func configure(_ context.Context, app *bootstrap.App[*AppConfig]) error {
	cfg := app.Cfg
	log := app.Logger

	telemetry := observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err := app.RegisterComponent(telemetry); err != nil {
		return err
	}

	provider, err := elevenlabs.NewProvider(cfg.ElevenLabs, log)
	if err != nil {
		return fmt.Errorf("elevenlabs provider: %w", err)
	}
	if err := app.RegisterComponent(provider); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := server.New(cfg.HTTP, log)
	routes := []string{cfg.Proxy.RoutePath}
	if !cfg.Proxy.StreamDisabled {
		routes = append(routes, "/")
	}
	srv.ApplyDefaults(cfg.Name, app.Components.HealthAll, reg, routes...)

	service := proxy.NewService(provider, log)
	maxUpload := cfg.Proxy.MaxUploadBytes()
	proxy.NewHandler(service, maxUpload).Register(srv.GinEngine(), cfg.Proxy.RoutePath)

	serverComponent := server.NewComponent(srv)
	if !cfg.Proxy.StreamDisabled {
		srv.Handle(http.MethodPost+" /{$}", proxy.NewStreamHandler(service, maxUpload))
		serverComponent.TrackMount(http.MethodPost, "/", "proxy.StreamHandler")
	}
	return app.RegisterComponent(serverComponent)
}
