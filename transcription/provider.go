package transcription

import (
	"context"
	"encoding/json"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	// Name returns the provider name used in logs and metrics.
	Name() string

	// CheckCredentials reports a configuration error when the provider
	// cannot authenticate against its backend. It never makes a call.
	CheckCredentials() error

	// Transcribe sends the request upstream exactly once and returns the
	// backend's JSON result verbatim.
	Transcribe(ctx context.Context, req Request) (json.RawMessage, error)
}
