// Package proxy accepts audio uploads and forwards them to a transcription
// provider.
//
// Translate holds the request rules: file name and content type resolution,
// entity detection and keyterm parsing, flag handling. Service wraps it with
// the credential check and the single provider call. Two hosting adapters
// share the Service: Handler for gin routes and NewStreamHandler for a bare
// net/http mount that reads the multipart body part by part.
package proxy
