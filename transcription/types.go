package transcription

// Upload is an audio file received from a caller. It only lives for the
// duration of one request.
type Upload struct {
	// Data is the raw file content.
	Data []byte
	// FileName is the name the caller supplied, possibly empty.
	FileName string
	// ContentType is the declared MIME type, possibly empty.
	ContentType string
}

// Size returns the upload size in bytes.
func (u Upload) Size() int { return len(u.Data) }

// Options are the optional transcription settings. A zero value for any
// field means the setting is left out of the outbound request.
type Options struct {
	// EntityDetection lists entity categories to tag, forwarded as a JSON array.
	EntityDetection []any
	// Keyterms are recognition hints, already trimmed and length-checked.
	Keyterms []string
	// LanguageCode is forwarded as-is when non-empty.
	LanguageCode string
	// Diarize requests speaker labels.
	Diarize bool
	// TagAudioEvents requests non-speech event tags.
	TagAudioEvents bool
}

// Request is a normalized transcription request ready for a provider.
type Request struct {
	Upload  Upload
	Options Options
}
