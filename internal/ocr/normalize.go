// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Shape names of the recognized response layouts.
const (
	ShapeLayoutParsing = "layout-parsing"
	ShapeStandardOCR   = "standard-ocr"
)

// Extraction is the text-bearing part of a recognized OCR response. Each
// supported response layout is one implementation.
type Extraction interface {
	// Shape names the layout, e.g. ShapeLayoutParsing.
	Shape() string

	// Text concatenates the extracted text in provider order.
	Text() string

	// Degraded reports whether the layout loses structure compared to
	// layout parsing.
	Degraded() bool
}

// LayoutParsing is the structured per-page, per-block layout found under
// result.layoutParsingResults.
type LayoutParsing struct {
	Pages []LayoutPage
}

// LayoutPage is one page of a layout-parsing result.
type LayoutPage struct {
	PrunedResult struct {
		ParsingResList []Block `json:"parsing_res_list"`
	} `json:"prunedResult"`
}

// Block is one layout block. block_content is usually a string; other values
// are rendered the way StandardOCR renders prunedResult.
type Block struct {
	BlockContent json.RawMessage `json:"block_content"`
}

// Content returns the block text, or "" when block_content is missing or null.
func (b Block) Content() string { return stringify(b.BlockContent) }

func (LayoutParsing) Shape() string  { return ShapeLayoutParsing }
func (LayoutParsing) Degraded() bool { return false }

// Text emits a "<!-- Page N -->" marker (1-based) before each page and a
// blank line after each block.
func (l LayoutParsing) Text() string {
	var b strings.Builder
	for i, page := range l.Pages {
		fmt.Fprintf(&b, "\n<!-- Page %d -->\n", i+1)
		for _, block := range page.PrunedResult.ParsingResList {
			b.WriteString(block.Content())
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// StandardOCR is the plain OCR layout found under result.ocrResults. Its
// prunedResult values have no fixed type.
type StandardOCR struct {
	Results []OCRResult
}

// OCRResult is one entry of a standard OCR result.
type OCRResult struct {
	PrunedResult json.RawMessage `json:"prunedResult"`
}

func (StandardOCR) Shape() string  { return ShapeStandardOCR }
func (StandardOCR) Degraded() bool { return true }

// Text writes each prunedResult followed by a newline. Strings are written
// verbatim, other values as compact JSON, and missing or null values as "".
func (s StandardOCR) Text() string {
	var b strings.Builder
	for _, r := range s.Results {
		b.WriteString(stringify(r.PrunedResult))
		b.WriteString("\n")
	}
	return b.String()
}

func stringify(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// variants lists the known layouts in order of preference; the first key
// present under "result" wins.
var variants = []struct {
	key    string
	decode func(json.RawMessage) (Extraction, error)
}{
	{key: "layoutParsingResults", decode: decodeLayoutParsing},
	{key: "ocrResults", decode: decodeStandardOCR},
}

func decodeLayoutParsing(raw json.RawMessage) (Extraction, error) {
	var pages []LayoutPage
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, err
	}
	return LayoutParsing{Pages: pages}, nil
}

func decodeStandardOCR(raw json.RawMessage) (Extraction, error) {
	var results []OCRResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, err
	}
	return StandardOCR{Results: results}, nil
}

// Parse identifies the layout of an OCR response body. A body matching no
// known layout yields *UnrecognizedSchemaError.
func Parse(body []byte) (Extraction, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, &UnrecognizedSchemaError{Keys: []string{}, Err: err}
	}

	var result map[string]json.RawMessage
	if raw, ok := top["result"]; ok {
		// A non-object result leaves the map nil and falls through.
		_ = json.Unmarshal(raw, &result)
	}

	for _, v := range variants {
		raw, ok := result[v.key]
		if !ok {
			continue
		}
		ext, err := v.decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding result.%s: %w", v.key, err)
		}
		return ext, nil
	}

	return nil, unrecognized(top)
}

func unrecognized(top map[string]json.RawMessage) *UnrecognizedSchemaError {
	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e := &UnrecognizedSchemaError{Keys: keys}
	if raw, ok := top["errorMsg"]; ok {
		_ = json.Unmarshal(raw, &e.Message)
	}
	return e
}

// Normalize parses body and returns its text. An empty text yields
// ErrEmptyExtraction together with the parsed Extraction.
func Normalize(body []byte) (string, Extraction, error) {
	ext, err := Parse(body)
	if err != nil {
		return "", nil, err
	}
	text := ext.Text()
	if text == "" {
		return "", ext, ErrEmptyExtraction
	}
	return text, ext, nil
}
