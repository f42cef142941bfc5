package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "github.com/kbukum/scribeproxy/errors"
	"github.com/kbukum/scribeproxy/logger"
)

// Recovery returns middleware that recovers from panics, logs the stack and
// answers with a 500 JSON error when nothing has been written yet.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("Panic recovered", map[string]interface{}{
					"error":  fmt.Sprintf("%v", rec),
					"stack":  string(debug.Stack()),
					"path":   r.URL.Path,
					"method": r.Method,
				})
				if !sw.wroteHeader {
					writeError(sw, apperrors.Internal(fmt.Errorf("%v", rec)))
				}
			}()
			next.ServeHTTP(sw, r)
		})
	}
}
