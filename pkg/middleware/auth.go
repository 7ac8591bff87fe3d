package middleware

import (
	"context"
	"net/http"
)

const UserIDKey contextKey = "user_id"

// UserIDHeader carries the identity resolved by the external
// authentication collaborator (typically an API gateway). The
// services never authenticate users themselves; they only consume
// the resolved identifier.
const UserIDHeader = "X-User-ID"

// ResolveUser copies the resolved user identifier, when present,
// into the request context. Handlers that require an identity use
// UserFromContext and reject the request themselves, so read-only
// endpoints stay anonymous.
func ResolveUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := r.Header.Get(UserIDHeader); userID != "" {
				ctx := context.WithValue(r.Context(), UserIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the resolved user identifier, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	if v := ctx.Value(UserIDKey); v != nil {
		if id, ok := v.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}
