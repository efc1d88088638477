package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/mercato-api/mercato/internal/domain"
)

// ContextKey is the type for context values set by this package.
type ContextKey string

const (
	// PrincipalContextKey is the context key for the authenticated user.
	PrincipalContextKey ContextKey = "principal"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// WithPrincipal returns a copy of ctx carrying the authenticated user.
// The principal is request-scoped: it is resolved fresh for every request
// and discarded when the request completes.
func WithPrincipal(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, PrincipalContextKey, user)
}

// PrincipalFromContext retrieves the authenticated user from the context.
// The boolean reports whether a principal was present.
func PrincipalFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(PrincipalContextKey).(*domain.User)
	return user, ok
}

// SetTraceID adds a trace ID to the context for correlating logs and error
// responses. An empty traceID generates a fresh one; the ID actually used is
// returned alongside the derived context.
func SetTraceID(ctx context.Context, traceID string) (context.Context, string) {
	if traceID == "" {
		traceID = generateTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID), traceID
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random 32-character hex trace ID.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively unrecoverable; log and carry on
		// without a trace ID rather than aborting the request.
		slog.Error("failed to generate trace ID", "error", err)
		return ""
	}
	return hex.EncodeToString(b)
}
