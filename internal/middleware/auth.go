package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type contextKey string

const (
	OwnerKey    contextKey = "owner"
	UserNameKey contextKey = "user_name"
)

// Identity is a configured API user.
type Identity struct {
	ID   string
	Name string
}

// OptionalAuth resolves the caller's identity from the Authorization header.
// Requests without a key proceed anonymously; a key that matches no
// configured user is rejected.
func OptionalAuth(users map[string]Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Support both "Bearer <key>" and "<key>" formats
			apiKey := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if apiKey == "" {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			// Constant-time comparison to prevent timing attacks
			var matched Identity
			valid := false
			for key, id := range users {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
					matched = id
					valid = true
					break
				}
			}

			if !valid {
				http.Error(w, "invalid API key", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), OwnerKey, matched.ID)
			ctx = context.WithValue(ctx, UserNameKey, matched.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOwner extracts the authenticated owner ID from context.
// Empty string means the caller is anonymous.
func GetOwner(ctx context.Context) string {
	if owner, ok := ctx.Value(OwnerKey).(string); ok {
		return owner
	}
	return ""
}
