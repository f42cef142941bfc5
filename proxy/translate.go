package proxy

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/kbukum/scribeproxy/errors"
	"github.com/kbukum/scribeproxy/logger"
	"github.com/kbukum/scribeproxy/transcription"
)

const (
	maxKeyterms      = 100
	maxKeytermLength = 50

	defaultFileName    = "audio.webm"
	defaultContentType = "audio/webm"
)

// Messages returned to callers for rejected input.
const (
	MsgNoAudio         = "No audio file provided"
	MsgTooManyKeyterms = "Maximum 100 keyterms allowed"
)

// Multipart field names accepted from callers.
const (
	formFieldAudio      = "audio"
	formEntityDetection = "entityDetection"
	formKeyterms        = "keyterms"
	formLanguageCode    = "languageCode"
	formDiarize         = "diarize"
	formTagAudioEvents  = "tagAudioEvents"
)

// Form holds the optional fields of a transcription request as received.
// Diarize and TagAudioEvents are either a string from a multipart form or a
// bool from a structured body.
type Form struct {
	EntityDetection string
	Keyterms        string
	LanguageCode    string
	Diarize         any
	TagAudioEvents  any
}

// Translate validates the upload and the optional fields and builds the
// request forwarded upstream. Malformed optional JSON is dropped with a
// warning; only a missing upload or too many keyterms are errors.
func Translate(upload *transcription.Upload, form Form, log *logger.Logger) (*transcription.Request, error) {
	if upload == nil {
		return nil, errors.MissingField(MsgNoAudio)
	}

	name, contentType := ResolveFile(upload.FileName, upload.ContentType)
	keyterms, err := ParseKeyterms(form.Keyterms, log)
	if err != nil {
		return nil, err
	}

	return &transcription.Request{
		Upload: transcription.Upload{
			Data:        upload.Data,
			FileName:    name,
			ContentType: contentType,
		},
		Options: transcription.Options{
			EntityDetection: ParseEntityDetection(form.EntityDetection, log),
			Keyterms:        keyterms,
			LanguageCode:    form.LanguageCode,
			Diarize:         ParseFlag(form.Diarize),
			TagAudioEvents:  ParseFlag(form.TagAudioEvents),
		},
	}, nil
}

// ResolveFile picks the name and content type sent upstream. A name with an
// extension is kept as-is; otherwise both are derived from the declared type.
func ResolveFile(name, contentType string) (string, string) {
	if strings.Contains(name, ".") {
		return name, contentType
	}
	switch contentType {
	case "audio/mpeg", "audio/mp3":
		return "audio.mp3", "audio/mpeg"
	case "audio/wav", "audio/wave":
		return "audio.wav", "audio/wav"
	case "audio/mp4", "audio/m4a":
		return "audio.m4a", "audio/mp4"
	}
	if contentType == "" {
		contentType = defaultContentType
	}
	return defaultFileName, contentType
}

// ParseEntityDetection decodes a JSON array of entity categories. Anything
// other than a non-empty array yields nil.
func ParseEntityDetection(raw string, log *logger.Logger) []any {
	if raw == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		warn(log, "Invalid entity_detection format", err)
		return nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil
	}
	return arr
}

// ParseKeyterms decodes a JSON array of keyterms. More than 100 elements is
// an error regardless of content; otherwise each element is stringified and
// trimmed, empty ones are dropped and ones over 50 characters are dropped
// with a warning.
func ParseKeyterms(raw string, log *logger.Logger) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		warn(log, "Invalid keyterms format", err)
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, nil
	}
	if len(arr) > maxKeyterms {
		return nil, errors.Validation(MsgTooManyKeyterms)
	}

	var terms []string
	for _, el := range arr {
		term := trimJS(stringify(el))
		if term == "" {
			continue
		}
		if n := len(utf16.Encode([]rune(term))); n > maxKeytermLength {
			if log != nil {
				log.Warn("Keyterm exceeds 50 characters, skipping", map[string]interface{}{
					"keyterm": term,
					"length":  n,
				})
			}
			continue
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// ParseFlag reports whether v is the boolean true or the string "true".
func ParseFlag(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}

func warn(log *logger.Logger, msg string, err error) {
	if log != nil {
		log.Warn(msg, map[string]interface{}{logger.FieldError: err.Error()})
	}
}

// stringify renders a decoded JSON value the way a browser client would
// coerce it to a string.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case []any:
		parts := make([]string, len(t))
		for i, el := range t {
			if el != nil {
				parts[i] = stringify(el)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	}
	return ""
}

func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs < 1e-6 || abs >= 1e21 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-07 -> 1e-7
		if i := strings.IndexAny(s, "+-"); i > 0 && s[i-1] == 'e' {
			exp := strings.TrimLeft(s[i+1:], "0")
			s = s[:i+1] + exp
		}
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimJS trims the whitespace set used by browser string trimming, which
// includes the byte order mark and excludes NEL.
func trimJS(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		if r == '\uFEFF' {
			return true
		}
		return r != '\u0085' && unicode.IsSpace(r)
	})
}
