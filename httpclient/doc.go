// Package httpclient provides the outbound HTTP adapter used to call the
// speech-to-text provider: base URL resolution, default headers, API key or
// bearer auth, ordered multipart bodies and classified transport errors.
//
//	a, _ := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.elevenlabs.io/v1",
//	    Auth:    httpclient.APIKeyAuthHeader(key, "xi-api-key"),
//	})
//	body := (&httpclient.MultipartBody{}).AddField("model_id", "scribe_v2")
//	resp, err := a.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: "/speech-to-text", Body: body})
//
// A non-2xx answer returns the Response together with an *Error so callers
// can still read the upstream body.
package httpclient
