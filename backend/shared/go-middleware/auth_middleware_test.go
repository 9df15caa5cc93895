package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(UserFromContext(r.Context())))
	})
}

func TestAuthMiddleware(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	valid := jwt.MapClaims{
		"sub": "alice",
		"iss": TokenIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	expired := jwt.MapClaims{
		"sub": "alice",
		"iss": TokenIssuer,
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	wrongIssuer := jwt.MapClaims{
		"sub": "alice",
		"iss": "Someone",
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	cases := []struct {
		name       string
		pub        *rsa.PublicKey
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", &key.PublicKey, "Bearer " + signToken(t, key, valid), http.StatusOK, "alice"},
		{"missing header", &key.PublicKey, "", http.StatusUnauthorized, ""},
		{"malformed header", &key.PublicKey, "Token abc", http.StatusUnauthorized, ""},
		{"expired", &key.PublicKey, "Bearer " + signToken(t, key, expired), http.StatusUnauthorized, ""},
		{"wrong issuer", &key.PublicKey, "Bearer " + signToken(t, key, wrongIssuer), http.StatusUnauthorized, ""},
		{"no key configured", nil, "Bearer " + signToken(t, key, valid), http.StatusUnauthorized, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			AuthMiddleware(tc.pub)(echoUser()).ServeHTTP(rr, req)
			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rr.Body.String())
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	h := OptionalAuthMiddleware(&key.PublicKey)(echoUser())

	t.Run("anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Anonymous", rr.Body.String())
	})

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, key, jwt.MapClaims{
			"sub": "bob",
			"iss": TokenIssuer,
			"exp": time.Now().Add(time.Hour).Unix(),
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "bob", rr.Body.String())
	})

	t.Run("invalid token still rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequestLoggerSetsID(t *testing.T) {
	rr := httptest.NewRecorder()
	RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed")
	rr = httptest.NewRecorder()
	RequestLogger(echoUser()).ServeHTTP(rr, req)
	assert.Equal(t, "fixed", rr.Header().Get(RequestIDHeader))
}
