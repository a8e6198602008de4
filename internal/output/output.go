// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output cleans generated HTML and writes it to disk.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	fenceOpen  = "```html"
	fenceClose = "```"
)

// WriteError reports that the HTML file could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing output %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// StripFences removes every "```html" and then every "```" anywhere in s.
// Surrounding whitespace is left as is.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, fenceOpen, "")
	return strings.ReplaceAll(s, fenceClose, "")
}

// Write strips code fences from html and writes the result to path as UTF-8,
// replacing any existing file. It returns the number of bytes written.
// Nothing is written if the stripped content is empty.
func Write(path, html string) (n int, err error) {
	content := StripFences(html)
	if content == "" {
		return 0, &WriteError{Path: path, Err: errors.New("generated content is empty")}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, &WriteError{Path: path, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	n, err = f.WriteString(content)
	if err != nil {
		return n, &WriteError{Path: path, Err: err}
	}
	return n, nil
}
