// Package transcription defines the provider interface and the request types
// shared by speech-to-text backends.
//
// A Request is built from a caller's Upload and normalized Options; the
// Provider forwards it and hands back the backend's JSON result untouched.
//
// # Backends
//
//   - transcription/elevenlabs: ElevenLabs speech-to-text
package transcription
