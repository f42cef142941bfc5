package elevenlabs

import (
	"context"

	"github.com/kbukum/scribeproxy/component"
	"github.com/kbukum/scribeproxy/util"
)

var (
	_ component.Component   = (*Provider)(nil)
	_ component.Describable = (*Provider)(nil)
)

// Start warns when the service is running without a credential. Requests
// still get a configuration error rather than the process refusing to start.
func (p *Provider) Start(_ context.Context) error {
	if !p.cfg.HasAPIKey() {
		p.log.Warn("ELEVENLABS_API_KEY is not set; transcription requests will fail")
		return nil
	}
	p.log.Info("ElevenLabs provider ready", map[string]interface{}{
		"base_url": p.cfg.BaseURL,
		"model_id": p.cfg.ModelID,
		"api_key":  util.MaskSecret(p.cfg.APIKey, keyPrefixLen),
	})
	return nil
}

// Stop releases idle upstream connections.
func (p *Provider) Stop(ctx context.Context) error {
	return p.client.Close(ctx)
}

// Health reports whether a key is configured along with its masked prefix.
func (p *Provider) Health(_ context.Context) component.Health {
	h := component.Health{
		Name:   ProviderName,
		Status: component.StatusHealthy,
		Details: map[string]any{
			"api_key_set":    p.cfg.HasAPIKey(),
			"api_key_prefix": "not set",
		},
	}
	if p.cfg.HasAPIKey() {
		h.Details["api_key_prefix"] = util.MaskSecret(p.cfg.APIKey, keyPrefixLen)
	} else {
		h.Status = component.StatusDegraded
		h.Message = "ELEVENLABS_API_KEY not set"
	}
	return h
}

// Describe returns the startup summary line.
func (p *Provider) Describe() component.Description {
	return component.Description{
		Name:    "ElevenLabs",
		Type:    "transcription",
		Details: p.cfg.BaseURL + speechToTextPath + " model=" + p.cfg.ModelID,
	}
}
