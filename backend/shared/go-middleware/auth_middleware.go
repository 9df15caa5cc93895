package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

type contextKey string

const ContextKeyUserID = contextKey("userID")

// UserFromContext returns the authenticated subject, or utils.AnonymousUser.
func UserFromContext(ctx context.Context) string {
	if sub, ok := ctx.Value(ContextKeyUserID).(string); ok && sub != "" {
		return sub
	}
	return utils.AnonymousUser
}

// AuthMiddleware is for protected endpoints. If token is missing or invalid, returns 401.
// A nil key means no verifier is configured and every request is rejected.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pub == nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, errAuthNotConfigured.Error(), nil,
				)
				return
			}

			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			tok, vErr := ValidateToken(tokenStr, pub)
			if vErr != nil || !tok.Valid {
				respondTokenError(w, vErr)
				return
			}

			sub, err := tok.Claims.GetSubject()
			if err != nil || sub == "" {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing subject", err,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondTokenError(w http.ResponseWriter, vErr error) {
	if errors.Is(vErr, jwt.ErrTokenExpired) {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", vErr,
		)
		return
	}
	utils.RespondErrorWithCode(
		w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", vErr,
	)
}
