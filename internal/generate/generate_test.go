// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsite/pkg/types"
)

func testConfig(baseURL string) types.GenerationConfig {
	return types.GenerationConfig{
		BaseURL:     baseURL,
		APIKey:      "llm-key",
		Model:       "ernie-3.5-8k",
		Temperature: 0.7,
		MaxChars:    2000,
	}
}

// chatServer answers every completion with content and records the request.
func chatServer(t *testing.T, status int, body string, got *chatRequest, header *http.Header) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/chat/completions", r.URL.Path)
		if header != nil {
			*header = r.Header.Clone()
		}
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func completion(content string) string {
	data, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
	})
	return string(data)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than cap", in: "abc", max: 10, want: "abc"},
		{name: "exact cap", in: "abcde", max: 5, want: "abcde"},
		{name: "cuts at cap", in: "abcdef", max: 3, want: "abc"},
		{name: "counts runes not bytes", in: "héllo wörld", max: 4, want: "héll"},
		{name: "multi-byte with few runes", in: "日本語", max: 3, want: "日本語"},
		{name: "non-positive cap", in: "abc", max: 0, want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}

func TestTruncate_5000To2000(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5000; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	in := b.String()

	out := Truncate(in, 2000)
	assert.Len(t, out, 2000)
	assert.Equal(t, in[:2000], out)
}

func TestGenerate_Request(t *testing.T) {
	var got chatRequest
	var header http.Header
	ts := chatServer(t, http.StatusOK, completion("<html>ok</html>"), &got, &header)

	c, err := NewClient(testConfig(ts.URL+"/v3/"), WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	markdown := strings.Repeat("x", 4992) + "@@TAIL@@"
	out, err := c.Generate(context.Background(), markdown)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", out)

	assert.Equal(t, "Bearer llm-key", header.Get("Authorization"))
	assert.Equal(t, "ernie-3.5-8k", got.Model)
	assert.False(t, got.Stream)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)

	prompt := got.Messages[0].Content
	assert.Contains(t, prompt, "Content to transform:\n"+strings.Repeat("x", 2000)+"\n")
	assert.NotContains(t, prompt, strings.Repeat("x", 2001))
	assert.NotContains(t, prompt, "@@TAIL@@")
}

func TestGenerate_StreamFieldIsSent(t *testing.T) {
	var raw map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(completion("<p>x</p>")))
	}))
	defer ts.Close()

	c, err := NewClient(testConfig(ts.URL), WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "md")
	require.NoError(t, err)

	assert.Equal(t, false, raw["stream"])
	assert.Contains(t, raw, "temperature")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantOp     string
		wantStatus int
		wantMsg    string
	}{
		{name: "auth failure", status: http.StatusUnauthorized, body: `{"error":"invalid key"}`, wantOp: "request", wantStatus: 401, wantMsg: "invalid key"},
		{name: "quota", status: http.StatusTooManyRequests, body: "quota exceeded", wantOp: "request", wantStatus: 429, wantMsg: "quota exceeded"},
		{name: "invalid json", status: http.StatusOK, body: "not json", wantOp: "decoding response"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantOp: "decoding response", wantMsg: "no choices"},
		{name: "empty content", status: http.StatusOK, body: completion("  "), wantOp: "decoding response", wantMsg: "empty completion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c, err := NewClient(testConfig(ts.URL), WithHTTPClient(ts.Client()))
			require.NoError(t, err)

			_, err = c.Generate(context.Background(), "md")

			var gErr *Error
			require.ErrorAs(t, err, &gErr)
			assert.Equal(t, tt.wantOp, gErr.Op)
			assert.Equal(t, tt.wantStatus, gErr.StatusCode)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry")
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c, err := NewClient(testConfig(ts.URL), WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	ts.Close()

	_, err = c.Generate(context.Background(), "md")

	var gErr *Error
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, "request", gErr.Op)
	assert.Zero(t, gErr.StatusCode)
}

func TestNewClient_Validation(t *testing.T) {
	cfg := testConfig("http://example.test")

	missingURL := cfg
	missingURL.BaseURL = ""
	_, err := NewClient(missingURL)
	assert.ErrorContains(t, err, "base URL")

	missingKey := cfg
	missingKey.APIKey = ""
	_, err = NewClient(missingKey)
	assert.ErrorContains(t, err, "API key")

	missingModel := cfg
	missingModel.Model = ""
	_, err = NewClient(missingModel)
	assert.ErrorContains(t, err, "model")

	defaults := cfg
	defaults.MaxChars = 0
	c, err := NewClient(defaults)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxChars, c.maxChars)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, "http://example.test/chat/completions", c.endpoint)
}

func TestRenderPrompt(t *testing.T) {
	prompt, err := RenderPrompt("# Heading\n<b>raw</b>")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(prompt, "Content to transform:\n# Heading\n<b>raw</b>\n"))
	for _, want := range []string{"Tailwind", "Hero section", "grid", "Poppins", "navbar", "footer", "FontAwesome", "```html"} {
		assert.Contains(t, prompt, want)
	}
}
