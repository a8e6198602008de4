// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package load reads the source PDF from local storage.
package load

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"
)

// FileAccessError reports that the input file could not be read: it is
// missing, not a regular file, not permitted, or reading failed.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("reading input file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// Document is the loaded input file.
type Document struct {
	Path string
	Data []byte

	// Pages is the page count reported by pdfcpu, or 0 if the probe failed.
	Pages int
}

// File reads the whole file at path. The page count is probed on a best-effort
// basis; a probe failure is logged at warn level on logger (which may be nil)
// and does not fail the load.
func File(path string, logger logrus.FieldLogger) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &FileAccessError{Path: path, Err: fmt.Errorf("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}

	doc := &Document{Path: path, Data: data}

	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("path", path).Warn("could not determine PDF page count")
		}
	} else {
		doc.Pages = pages
	}

	return doc, nil
}
