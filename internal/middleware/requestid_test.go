package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestIDKeepsCallerHeader(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != "trace-abc-123" {
		t.Fatalf("context request id = %q, want trace-abc-123", seen)
	}
	if got := rr.Header().Get("X-Request-ID"); got != "trace-abc-123" {
		t.Fatalf("response header = %q, want trace-abc-123", got)
	}
}

func TestRequestIDMintsWhenMissing(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated request id")
	}
}

func TestSanitizeRequestID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain id passes", in: "req-42", want: "req-42"},
		{name: "surrounding space trimmed", in: "  req-42  ", want: "req-42"},
		{name: "blank rejected", in: "   ", want: ""},
		{name: "oversized rejected", in: strings.Repeat("a", maxRequestIDLen+1), want: ""},
		{name: "control characters rejected", in: "req\n42", want: ""},
		{name: "quote rejected", in: `req"42`, want: ""},
		{name: "non-ascii rejected", in: "req-ü", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeRequestID(tc.in); got != tc.want {
				t.Fatalf("sanitizeRequestID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
