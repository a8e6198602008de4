// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyExtraction is returned when a recognized response yields no text.
var ErrEmptyExtraction = errors.New("OCR response contained no text")

// TransportError reports that the OCR request never produced a response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("calling OCR API %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError reports a response the client cannot use: any status other than
// 200, or a 200 whose body is not JSON.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("OCR API returned %d: %s", e.StatusCode, e.Body)
}

// UnrecognizedSchemaError reports a response body matching none of the known
// layouts. Keys lists the top-level keys that were present.
type UnrecognizedSchemaError struct {
	Keys []string

	// Message is the provider's errorMsg field, when there was one.
	Message string

	// Err is set when the body is not a JSON object at all.
	Err error
}

func (e *UnrecognizedSchemaError) Error() string {
	msg := fmt.Sprintf("unexpected OCR response structure, keys found: [%s]", strings.Join(e.Keys, ", "))
	if e.Message != "" {
		msg += fmt.Sprintf(" (provider message: %s)", e.Message)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (body is not a JSON object: %v)", e.Err)
	}
	return msg
}

func (e *UnrecognizedSchemaError) Unwrap() error { return e.Err }
