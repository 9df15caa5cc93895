package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stretchr/testify/require"
)

// BuildRequest builds a request against BaseURL+path. A non-empty jwtString is
// sent as a bearer token; a non-nil body is JSON encoded.
func (h *TestHelper) BuildRequest(method, path, jwtString string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.T, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(h.Ctx, method, h.BaseURL+path, reader)
	require.NoError(h.T, err)

	if jwtString != "" {
		req.Header.Set("Authorization", "Bearer "+jwtString)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// DoRequest performs an HTTP request and asserts that no network-level error occurred.
func (h *TestHelper) DoRequest(req *http.Request) *http.Response {
	resp, err := h.Client.Do(req)
	require.NoError(h.T, err, "HTTP request failed")
	return resp
}

// ReadBody reads and closes the response body.
func (h *TestHelper) ReadBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return "<nil response or body>"
	}
	defer resp.Body.Close()
	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(h.T, err)
	return string(bodyBytes)
}

// DoJSON performs the request, asserts the status code and decodes the body into out (if non-nil).
func (h *TestHelper) DoJSON(req *http.Request, wantStatus int, out any) *http.Response {
	resp := h.DoRequest(req)
	body := h.ReadBody(resp)
	require.Equal(h.T, wantStatus, resp.StatusCode, "unexpected status for %s %s: %s", req.Method, req.URL.Path, body)
	if out != nil {
		require.NoError(h.T, json.Unmarshal([]byte(body), out), "failed to decode body: %s", body)
	}
	return resp
}
