// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsite/pkg/types"
)

func newTestClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(types.OCRConfig{URL: ts.URL, Token: "secret-token"}, WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(types.OCRConfig{Token: "t"})
	assert.ErrorContains(t, err, "URL is required")

	_, err = NewClient(types.OCRConfig{URL: "http://example.test"})
	assert.ErrorContains(t, err, "token is required")

	c, err := NewClient(types.OCRConfig{URL: "http://example.test", Token: "t"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestRecognize_Request(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake bytes \x00\xff")

	var got map[string]any
	var auth, contentType string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"result":{"layoutParsingResults":[]}}`))
	}))
	defer ts.Close()

	body, err := newTestClient(t, ts).Recognize(context.Background(), pdf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":{"layoutParsingResults":[]}}`, string(body))

	assert.Equal(t, "token secret-token", auth)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pdf), got["file"])
	assert.Equal(t, float64(FileTypePDF), got["fileType"])
	assert.Equal(t, false, got["useDocOrientationClassify"])
	assert.Equal(t, false, got["useTextlineOrientation"])
	assert.Len(t, got, 4)
}

func TestRecognize_HTTPError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorMsg":"bad token"}`))
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts).Recognize(context.Background(), []byte("x"))
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, `{"errorMsg":"bad token"}`, httpErr.Body)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry")
}

func TestRecognize_NonJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts).Recognize(context.Background(), []byte("x"))

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusOK, httpErr.StatusCode)
	assert.Equal(t, "<html>gateway</html>", httpErr.Body)
}

func TestRecognize_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestClient(t, ts)
	ts.Close()

	_, err := c.Recognize(context.Background(), []byte("x"))

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, ts.URL, tErr.URL)
	assert.NotNil(t, tErr.Unwrap())
}
