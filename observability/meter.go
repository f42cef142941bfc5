package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/scribeproxy/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string
	Insecure bool
	// Interval is the export period.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider with a periodic
// OTLP exporter and installs it globally.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the transcription instruments.
type Metrics struct {
	upstreamTotal    metric.Int64Counter
	upstreamDuration metric.Float64Histogram
	uploadBytes      metric.Int64Histogram
	errorTotal       metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	upstreamTotal, err := meter.Int64Counter("transcription.upstream.requests",
		metric.WithDescription("Upstream speech-to-text calls by provider and status code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating upstream counter: %w", err)
	}

	upstreamDuration, err := meter.Float64Histogram("transcription.upstream.duration",
		metric.WithDescription("Duration of upstream speech-to-text calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating upstream duration histogram: %w", err)
	}

	uploadBytes, err := meter.Int64Histogram("transcription.upload.size",
		metric.WithDescription("Size of forwarded audio uploads"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating upload size histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("transcription.errors",
		metric.WithDescription("Failed transcription requests by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	return &Metrics{
		upstreamTotal:    upstreamTotal,
		upstreamDuration: upstreamDuration,
		uploadBytes:      uploadBytes,
		errorTotal:       errorTotal,
	}, nil
}

// RecordUpstream records one completed upstream call. A status of 0 means
// the call failed before any response arrived.
func (m *Metrics) RecordUpstream(ctx context.Context, provider string, status int, duration time.Duration) {
	m.upstreamTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", strconv.Itoa(status)),
	))
	m.upstreamDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
	))
}

// RecordUpload records the size of a forwarded upload.
func (m *Metrics) RecordUpload(ctx context.Context, provider string, size int) {
	m.uploadBytes.Record(ctx, int64(size), metric.WithAttributes(
		attribute.String("provider", provider),
	))
}

// RecordError records a failed transcription by error code.
func (m *Metrics) RecordError(ctx context.Context, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
	))
}
