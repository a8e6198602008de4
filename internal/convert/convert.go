// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert wraps extracted OCR text in a markdown envelope.
package convert

import "strings"

// Heading titles every wrapped document.
const Heading = "# Extracted Document Content"

// Wrap places text under Heading. The text is not parsed or reformatted, and
// the result depends only on text.
func Wrap(text string) string {
	var b strings.Builder
	b.Grow(len(Heading) + len(text) + 3)
	b.WriteString("\n")
	b.WriteString(Heading)
	b.WriteString("\n")
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}
