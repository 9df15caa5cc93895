package middleware

import (
	"context"
	"crypto/rsa"
	"net/http"
)

// OptionalAuthMiddleware is identical to AuthMiddleware
// except that it lets the request through if *no* token is present,
// or if no key is configured at all.
func OptionalAuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, _ := extractAccessToken(r) // ignore error here
			if tokenStr == "" || pub == nil {
				next.ServeHTTP(w, r) // unauthenticated, allowed
				return
			}

			tok, vErr := ValidateToken(tokenStr, pub)
			if vErr != nil || !tok.Valid {
				respondTokenError(w, vErr)
				return
			}

			if sub, err := tok.Claims.GetSubject(); err == nil && sub != "" {
				ctx := context.WithValue(r.Context(), ContextKeyUserID, sub)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
