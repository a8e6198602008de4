// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr uploads a PDF to a layout-parsing OCR service and turns the
// response into plain text.
package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/docsite/internal/httputil"
	"github.com/pdiddy/docsite/pkg/types"
)

// DefaultTimeout bounds one OCR request when the configuration leaves it unset.
const DefaultTimeout = 5 * time.Minute

// FileTypePDF is the fileType discriminator the service expects for PDFs.
const FileTypePDF = 0

// request is the JSON body of an OCR call.
type request struct {
	File                      string `json:"file"`
	FileType                  int    `json:"fileType"`
	UseDocOrientationClassify bool   `json:"useDocOrientationClassify"`
	UseTextlineOrientation    bool   `json:"useTextlineOrientation"`
}

// Client calls the OCR endpoint.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its timeout is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a client for cfg.URL authenticated with cfg.Token.
func NewClient(cfg types.OCRConfig, opts ...Option) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("OCR endpoint URL is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("OCR access token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		url:        cfg.URL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Recognize uploads data as a base64-encoded PDF and returns the JSON
// response body. Errors are *TransportError or *HTTPError.
func (c *Client) Recognize(ctx context.Context, data []byte) ([]byte, error) {
	payload := request{
		File:                      base64.StdEncoding.EncodeToString(data),
		FileType:                  FileTypePDF,
		UseDocOrientationClassify: false,
		UseTextlineOrientation:    false,
	}

	header := http.Header{}
	header.Set("Authorization", "token "+c.token)

	resp, err := httputil.PostJSON(ctx, c.httpClient, c.url, header, payload)
	if err != nil {
		return nil, &TransportError{URL: c.url, Err: err}
	}

	if !resp.OK() || !json.Valid(resp.Body) {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return resp.Body, nil
}
