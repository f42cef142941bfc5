package proxy

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribeproxy/errors"
	"github.com/kbukum/scribeproxy/server"
	"github.com/kbukum/scribeproxy/transcription"
)

// Handler serves transcription requests through gin.
type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHandler creates a gin handler delegating to service.
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUpload: maxUploadBytes}
}

// Register mounts the handler on r at path.
func (h *Handler) Register(r gin.IRoutes, path string) {
	r.POST(path, h.Transcribe)
}

// Transcribe handles POST multipart uploads with an "audio" file part.
func (h *Handler) Transcribe(c *gin.Context) {
	// A missing credential is reported before the upload is read.
	if err := h.service.Ready(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	upload, err := h.readUpload(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	form := Form{
		EntityDetection: c.PostForm(formEntityDetection),
		Keyterms:        c.PostForm(formKeyterms),
		LanguageCode:    c.PostForm(formLanguageCode),
		Diarize:         c.PostForm(formDiarize),
		TagAudioEvents:  c.PostForm(formTagAudioEvents),
	}

	result, appErr := h.service.Transcribe(c.Request.Context(), upload, form)
	if appErr != nil {
		server.RespondWithError(c, appErr)
		return
	}
	server.RespondRawJSON(c, result)
}

// readUpload returns the audio part, or nil when the request has none.
func (h *Handler) readUpload(c *gin.Context) (*transcription.Upload, error) {
	fh, err := c.FormFile(formFieldAudio)
	switch {
	case err == nil:
	case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
		return nil, nil
	default:
		return nil, classifyBodyError(err, h.maxUpload)
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		return nil, errors.PayloadTooLarge(h.maxUpload)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return &transcription.Upload{
		Data:        data,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}

// classifyBodyError maps a failure while reading the request body.
func classifyBodyError(err error, limit int64) error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		if limit <= 0 {
			limit = maxErr.Limit
		}
		return errors.PayloadTooLarge(limit)
	}
	return errors.Validation("Malformed multipart body").WithCause(err)
}
