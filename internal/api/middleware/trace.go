package middleware

import (
	"net/http"

	"github.com/mercato-api/mercato/internal/api/shared"
)

// TraceID attaches a request-scoped trace identifier to the context and
// echoes it back in the X-Trace-ID response header. An incoming X-Trace-ID
// header is honored so callers can correlate across services.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		ctx, traceID := shared.SetTraceID(r.Context(), traceID)
		w.Header().Set("X-Trace-ID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
