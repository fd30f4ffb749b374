package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest"
)

// headerTracker notes whether the wrapped handler already sent a status line.
type headerTracker struct {
	http.ResponseWriter
	sent bool
}

func (t *headerTracker) WriteHeader(code int) {
	t.sent = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *headerTracker) Write(b []byte) (int, error) {
	t.sent = true
	return t.ResponseWriter.Write(b)
}

// Recovery converts a handler panic into an INTERNAL_ERROR response.
// When the handler had already started its response the panic is only
// logged, since a second status line cannot be sent.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracker := &headerTracker{ResponseWriter: w}
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.Error("checkout handler panicked",
					"panic", v,
					"route", r.Method+" "+r.URL.Path,
					"request_id", RequestIDFromContext(r.Context()),
					"response_started", tracker.sent,
					"stack", string(debug.Stack()),
				)
				if tracker.sent {
					return
				}
				rest.WriteError(w, application.NewInternalError(fmt.Errorf("handler panic on %s %s: %v", r.Method, r.URL.Path, v)), logger)
			}()

			next.ServeHTTP(tracker, r)
		})
	}
}
