package elevenlabs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/scribeproxy/errors"
	"github.com/kbukum/scribeproxy/httpclient"
	"github.com/kbukum/scribeproxy/logger"
	"github.com/kbukum/scribeproxy/observability"
	"github.com/kbukum/scribeproxy/transcription"
	"github.com/kbukum/scribeproxy/util"
	"github.com/kbukum/scribeproxy/version"
)

const (
	// ProviderName identifies the provider in logs, metrics and health.
	ProviderName = "elevenlabs"

	apiKeyHeader     = "xi-api-key"
	speechToTextPath = "/speech-to-text"
	keyPrefixLen     = 10
)

// MissingKeyMessage is returned to callers when no credential is configured.
const MissingKeyMessage = "Server configuration error: ELEVENLABS_API_KEY not set"

var _ transcription.Provider = (*Provider)(nil)

// Provider implements transcription.Provider against the ElevenLabs
// speech-to-text API.
type Provider struct {
	cfg     Config
	client  *httpclient.Adapter
	metrics *observability.Metrics
	log     *logger.Logger
}

// Option customizes a Provider.
type Option func(*options)

type options struct {
	transport http.RoundTripper
	metrics   *observability.Metrics
}

// WithTransport sets the round tripper under the tracing transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithMetrics sets the instruments used to record upstream calls.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewProvider creates a new ElevenLabs provider.
func NewProvider(cfg Config, log *logger.Logger, opts ...Option) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		m, err := observability.NewMetrics(observability.Meter("scribeproxy/" + ProviderName))
		if err != nil {
			return nil, fmt.Errorf("elevenlabs: create metrics: %w", err)
		}
		o.metrics = m
	}

	client, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthHeader(cfg.APIKey, apiKeyHeader),
		Headers: map[string]string{"User-Agent": version.UserAgent()},
	}, httpclient.WithTransport(observability.Transport(o.transport)))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: create http client: %w", err)
	}

	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Provider{
		cfg:     cfg,
		client:  client,
		metrics: o.metrics,
		log:     log.WithComponent(ProviderName),
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// CheckCredentials fails with a configuration error when no API key is set.
func (p *Provider) CheckCredentials() error {
	if !p.cfg.HasAPIKey() {
		return errors.Configuration(MissingKeyMessage)
	}
	return nil
}

// Transcribe posts the request to /speech-to-text once and maps the answer.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (json.RawMessage, error) {
	if err := p.CheckCredentials(); err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanUpstreamCall)
	defer span.End()
	span.SetAttributes(
		attribute.String(observability.AttrProvider, ProviderName),
		attribute.String(observability.AttrModelID, p.cfg.ModelID),
		attribute.String(observability.AttrFileName, req.Upload.FileName),
		attribute.Int(observability.AttrFileSize, req.Upload.Size()),
		attribute.Int(observability.AttrKeytermCount, len(req.Options.Keyterms)),
	)

	log := p.log.WithContext(ctx)
	log.Debug("Calling speech-to-text", map[string]interface{}{
		"file_name":    req.Upload.FileName,
		"content_type": req.Upload.ContentType,
		"file_size":    req.Upload.Size(),
		"keyterms":     len(req.Options.Keyterms),
		"api_key":      util.MaskSecret(p.cfg.APIKey, keyPrefixLen),
	})
	p.metrics.RecordUpload(ctx, ProviderName, req.Upload.Size())

	start := time.Now()
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   speechToTextPath,
		Body:   EncodePayload(req, p.cfg.ModelID),
	})
	elapsed := time.Since(start)

	if resp == nil {
		p.metrics.RecordUpstream(ctx, ProviderName, 0, elapsed)
		appErr := transportError(err)
		observability.SetSpanError(ctx, err)
		log.Error("Speech-to-text call failed", logger.ErrorFields("transcribe", err))
		return nil, appErr
	}

	p.metrics.RecordUpstream(ctx, ProviderName, resp.StatusCode, elapsed)
	span.SetAttributes(attribute.Int(observability.AttrUpstreamStatus, resp.StatusCode))

	result, mapErr := MapResponse(resp.StatusCode, resp.Status, resp.Body)
	fields := logger.DurationFields("transcribe", elapsed)
	fields["status"] = resp.StatusCode
	if mapErr != nil {
		switch {
		case httpclient.IsAuth(err):
			fields["hint"] = "upstream rejected ELEVENLABS_API_KEY"
		case httpclient.IsRateLimit(err):
			fields["hint"] = "upstream quota or concurrency limit reached"
		case httpclient.IsServerError(err):
			fields["hint"] = "upstream unavailable"
		}
		observability.SetSpanError(ctx, mapErr)
		log.Warn("Speech-to-text returned an error", logger.MergeWithError(fields, mapErr))
		return nil, mapErr
	}
	log.Info("Speech-to-text completed", fields)
	return result, nil
}

// transportError maps a failure that produced no response.
func transportError(err error) error {
	switch {
	case httpclient.IsTimeout(err):
		return errors.Timeout(ProviderName, err)
	case httpclient.IsConnection(err):
		return errors.ConnectionFailed(ProviderName, err)
	default:
		return errors.Internal(err)
	}
}
