package elevenlabs

import (
	"bytes"
	"encoding/json"
	"mime"
	"path"

	"github.com/kbukum/scribeproxy/httpclient"
	"github.com/kbukum/scribeproxy/transcription"
)

// Form field names of the speech-to-text endpoint.
const (
	fieldFile            = "file"
	fieldModelID         = "model_id"
	fieldEntityDetection = "entity_detection"
	fieldKeyterms        = "keyterms"
	fieldLanguageCode    = "language_code"
	fieldDiarize         = "diarize"
	fieldTagAudioEvents  = "tag_audio_events"
)

// EncodePayload builds the outbound multipart body: the file part, the model
// identifier and then only the options that are set. Keyterms become one
// repeated field each.
func EncodePayload(req transcription.Request, modelID string) *httpclient.MultipartBody {
	contentType := req.Upload.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(req.Upload.FileName))
	}

	body := &httpclient.MultipartBody{
		Files: []httpclient.FileField{{
			FieldName:   fieldFile,
			FileName:    req.Upload.FileName,
			ContentType: contentType,
			Data:        req.Upload.Data,
		}},
	}
	body.AddField(fieldModelID, modelID)

	opts := req.Options
	if len(opts.EntityDetection) > 0 {
		if encoded, err := encodeJSON(opts.EntityDetection); err == nil {
			body.AddField(fieldEntityDetection, encoded)
		}
	}
	for _, term := range opts.Keyterms {
		body.AddField(fieldKeyterms, term)
	}
	if opts.LanguageCode != "" {
		body.AddField(fieldLanguageCode, opts.LanguageCode)
	}
	if opts.Diarize {
		body.AddField(fieldDiarize, "true")
	}
	if opts.TagAudioEvents {
		body.AddField(fieldTagAudioEvents, "true")
	}
	return body
}

// encodeJSON marshals v compactly without HTML escaping, so category names
// reach the upstream exactly as the caller wrote them.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
