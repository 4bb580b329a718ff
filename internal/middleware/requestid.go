package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// maxRequestIDLen caps caller-supplied request IDs so log lines stay bounded.
const maxRequestIDLen = 64

// RequestID propagates the caller's X-Request-ID, minting a UUID when the
// header is missing or unusable. The chosen ID is echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := sanitizeRequestID(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), requestIDKey, rid)
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sanitizeRequestID rejects IDs that are blank, oversized, or carry
// characters that would corrupt structured log output.
func sanitizeRequestID(rid string) string {
	rid = strings.TrimSpace(rid)
	if rid == "" || len(rid) > maxRequestIDLen {
		return ""
	}
	for _, c := range rid {
		if c <= 0x20 || c > 0x7e || c == '"' {
			return ""
		}
	}
	return rid
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
