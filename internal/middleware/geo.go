package middleware

import (
	"context"
	"net/http"

	"learnd/internal/infra/geoip"
)

const countryKey contextKey = "country"

// Geo annotates the request context with the caller's ISO country code, used
// when tagging usage events. Lookup failures leave the context untouched.
func Geo(resolver geoip.CountryResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver != nil {
				if code, err := resolver.CountryCode(clientIPForRateLimit(r)); err == nil && code != "" {
					r = r.WithContext(context.WithValue(r.Context(), countryKey, code))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(countryKey).(string); ok {
		return v
	}
	return ""
}
