package proxy

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/scribeproxy/errors"
	"github.com/kbukum/scribeproxy/logger"
	"github.com/kbukum/scribeproxy/observability"
	"github.com/kbukum/scribeproxy/transcription"
)

// Service runs one transcription: credential check, translation and a single
// provider call. Both HTTP hosting models delegate to it.
type Service struct {
	provider transcription.Provider
	log      *logger.Logger
}

// NewService creates a Service backed by provider.
func NewService(provider transcription.Provider, log *logger.Logger) *Service {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Service{provider: provider, log: log.WithComponent("proxy")}
}

// Ready returns a configuration error when requests cannot be served. Handlers
// call it before reading the request body.
func (s *Service) Ready() error {
	return s.provider.CheckCredentials()
}

// Transcribe translates the upload and form and forwards them once. Every
// failure comes back as an *errors.AppError.
//
// The upstream call does not inherit cancellation from ctx: a caller that
// disconnects early does not abort a transcription already in flight.
func (s *Service) Transcribe(ctx context.Context, upload *transcription.Upload, form Form) (json.RawMessage, *errors.AppError) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()

	log := s.log.WithContext(ctx)
	if id := logger.RequestIDFromContext(ctx); id != "" {
		span.SetAttributes(attribute.String(observability.AttrRequestID, id))
	}

	if err := s.Ready(); err != nil {
		return nil, s.fail(ctx, log, err)
	}

	req, err := Translate(upload, form, log)
	if err != nil {
		return nil, s.fail(ctx, log, err)
	}

	log.Info("Forwarding transcription", map[string]interface{}{
		"file_name":    req.Upload.FileName,
		"content_type": req.Upload.ContentType,
		"file_size":    req.Upload.Size(),
		"keyterms":     len(req.Options.Keyterms),
		"language":     req.Options.LanguageCode,
	})

	result, err := s.provider.Transcribe(context.WithoutCancel(ctx), *req)
	if err != nil {
		return nil, s.fail(ctx, log, err)
	}
	return result, nil
}

func (s *Service) fail(ctx context.Context, log *logger.Logger, err error) *errors.AppError {
	appErr := errors.From(err)
	observability.SetSpanError(ctx, appErr)
	fields := map[string]interface{}{
		"code":   string(appErr.Code),
		"status": appErr.HTTPStatus,
	}
	if appErr.HTTPStatus >= 500 {
		log.Error("Transcription failed", logger.MergeWithError(fields, appErr))
	} else {
		log.Warn("Transcription rejected", logger.MergeWithError(fields, appErr))
	}
	return appErr
}
