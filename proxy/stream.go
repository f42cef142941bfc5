package proxy

import (
	"io"
	"net/http"

	"github.com/kbukum/scribeproxy/errors"
	"github.com/kbukum/scribeproxy/server"
	"github.com/kbukum/scribeproxy/transcription"
)

// maxFieldBytes bounds each non-file form value.
const maxFieldBytes = 1 << 20

// NewStreamHandler returns a plain net/http handler that walks the multipart
// body part by part instead of going through gin. It serves the same contract
// as Handler for deployments that mount a bare function.
func NewStreamHandler(service *Service, maxUploadBytes int64) http.Handler {
	return &streamHandler{service: service, maxUpload: maxUploadBytes}
}

type streamHandler struct {
	service   *Service
	maxUpload int64
}

func (h *streamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		server.WriteError(w, errors.New(errors.ErrCodeInvalidInput, "Method not allowed", http.StatusMethodNotAllowed))
		return
	}
	if err := h.service.Ready(); err != nil {
		server.WriteError(w, err)
		return
	}

	if h.maxUpload > 0 {
		if r.ContentLength > h.maxUpload {
			server.WriteError(w, errors.PayloadTooLarge(h.maxUpload))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}

	upload, form, err := h.readParts(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}

	result, appErr := h.service.Transcribe(r.Context(), upload, form)
	if appErr != nil {
		server.WriteError(w, appErr)
		return
	}
	server.WriteRawJSON(w, result)
}

// readParts collects the audio file and the first value of each known field.
// A body that is not multipart yields no upload.
func (h *streamHandler) readParts(r *http.Request) (*transcription.Upload, Form, error) {
	var form Form
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, form, nil
	}

	var upload *transcription.Upload
	seen := make(map[string]bool)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, form, classifyBodyError(err, h.maxUpload)
		}

		name := part.FormName()
		if part.FileName() != "" {
			if name == formFieldAudio && upload == nil {
				data, err := io.ReadAll(part)
				if err != nil {
					return nil, form, classifyBodyError(err, h.maxUpload)
				}
				upload = &transcription.Upload{
					Data:        data,
					FileName:    part.FileName(),
					ContentType: part.Header.Get("Content-Type"),
				}
			}
			_ = part.Close()
			continue
		}

		value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes+1))
		_ = part.Close()
		if err != nil {
			return nil, form, classifyBodyError(err, h.maxUpload)
		}
		if len(value) > maxFieldBytes {
			return nil, form, errors.Validation("Form field " + name + " is too large")
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		setField(&form, name, string(value))
	}
	return upload, form, nil
}

func setField(form *Form, name, value string) {
	switch name {
	case formEntityDetection:
		form.EntityDetection = value
	case formKeyterms:
		form.Keyterms = value
	case formLanguageCode:
		form.LanguageCode = value
	case formDiarize:
		form.Diarize = value
	case formTagAudioEvents:
		form.TagAudioEvents = value
	}
}
