package testhelpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// CreateJWT signs a bearer token for the given user name.
func (h *TestHelper) CreateJWT(userName string) string {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"iss": "Poof",
		"sub": userName,
		"iat": now,
		"exp": now + 15*60,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(h.PrivateKey)
	require.NoError(h.T, err, "Failed to sign test JWT")
	return signed
}

// CreateExpiredJWT signs a token that expired a minute ago.
func (h *TestHelper) CreateExpiredJWT(userName string) string {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"iss": "Poof",
		"sub": userName,
		"iat": now - 16*60,
		"exp": now - 60,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(h.PrivateKey)
	require.NoError(h.T, err, "Failed to sign expired test JWT")
	return signed
}
