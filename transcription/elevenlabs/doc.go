// Package elevenlabs implements transcription.Provider for the ElevenLabs
// speech-to-text API.
//
// Requests are encoded as multipart/form-data (EncodePayload) and sent once
// with the xi-api-key header. Responses go through MapResponse, which returns
// successful bodies verbatim and turns failures into errors.AppError values
// carrying the upstream status.
//
// The provider doubles as a lifecycle component: it warns at startup when no
// API key is configured and reports the key state through health checks.
package elevenlabs
