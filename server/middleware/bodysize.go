package middleware

import (
	"net/http"

	apperrors "github.com/kbukum/scribeproxy/errors"
	"github.com/kbukum/scribeproxy/util"
)

const defaultMaxBodySize = 100 * 1024 * 1024 // 100MB

// BodySizeLimit returns middleware that restricts the request body to the given
// size string (e.g. "100MB", "512KB", "1GB"). A declared Content-Length over
// the limit is rejected with 413 before any of the body is read; bodies of
// unknown length are cut off by http.MaxBytesReader.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > size {
				writeError(w, apperrors.PayloadTooLarge(size))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
