// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate asks a hosted chat-completion model to turn markdown into
// a styled single-page HTML document.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/docsite/internal/httputil"
	"github.com/pdiddy/docsite/pkg/types"
)

// DefaultTimeout bounds one completion request when the configuration leaves it unset.
const DefaultTimeout = 2 * time.Minute

// Error reports a failed completion. Op names the step that failed;
// StatusCode is set when the API answered with a non-200 status.
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("generation %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// chatRequest is the body of an OpenAI-compatible chat completion call.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the completion response the client reads.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client calls {BaseURL}/chat/completions.
type Client struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	maxChars    int
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its timeout is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a client from cfg. A zero MaxChars means DefaultMaxChars.
func NewClient(cfg types.GenerationConfig, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("generation base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generation API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("generation model is required")
	}

	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		endpoint:    strings.TrimSuffix(cfg.BaseURL, "/") + "/chat/completions",
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxChars:    maxChars,
		httpClient:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate truncates markdown to the configured character budget, embeds it
// in the site prompt and returns the model's reply. Every failure is *Error.
func (c *Client) Generate(ctx context.Context, markdown string) (string, error) {
	prompt, err := RenderPrompt(Truncate(markdown, c.maxChars))
	if err != nil {
		return "", &Error{Op: "rendering prompt", Err: err}
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Stream:      false,
		Temperature: c.temperature,
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := httputil.PostJSON(ctx, c.httpClient, c.endpoint, header, reqBody)
	if err != nil {
		return "", &Error{Op: "request", Err: err}
	}

	if !resp.OK() {
		return "", &Error{Op: "request", StatusCode: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(resp.Body)))}
	}

	var cResp chatResponse
	if err := json.Unmarshal(resp.Body, &cResp); err != nil {
		return "", &Error{Op: "decoding response", Err: err}
	}

	if len(cResp.Choices) == 0 {
		return "", &Error{Op: "decoding response", Err: errors.New("no choices in completion")}
	}

	content := cResp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &Error{Op: "decoding response", Err: errors.New("empty completion content")}
	}

	return content, nil
}
