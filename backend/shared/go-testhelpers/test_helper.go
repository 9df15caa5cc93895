package testhelpers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestHelper bundles what an HTTP-level test needs: a signing key whose public
// half the server under test trusts, the server's base URL and a client.
type TestHelper struct {
	T          *testing.T
	Ctx        context.Context
	BaseURL    string
	PrivateKey *rsa.PrivateKey
	Client     *http.Client
}

// NewTestHelper generates a fresh RSA key pair. BaseURL is filled in by the
// caller once its server is listening.
func NewTestHelper(t *testing.T) *TestHelper {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "Failed to generate RSA key")

	return &TestHelper{
		T:          t,
		Ctx:        context.Background(),
		PrivateKey: privateKey,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// PublicKeyBase64 returns the PEM-encoded public key, base64 wrapped, in the
// form the service reads from JWT_PUBLIC_KEY_BASE64.
func (h *TestHelper) PublicKeyBase64() string {
	der, err := x509.MarshalPKIXPublicKey(&h.PrivateKey.PublicKey)
	require.NoError(h.T, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return base64.StdEncoding.EncodeToString(pemBytes)
}
