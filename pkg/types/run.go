// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Stage names a step of the pipeline. A run moves forward through the stages
// in declaration order and ends in StageDone or StageFailed.
type Stage string

const (
	StageLoading   Stage = "loading"
	StageOCR       Stage = "ocr"
	StageNormalize Stage = "normalize"
	StageGenerate  Stage = "generate"
	StageWrite     Stage = "write"
	StageDone      Stage = "done"
	StageFailed    Stage = "failed"
)

// RunSummary describes a completed (or aborted) pipeline run.
type RunSummary struct {
	// Stage is the last stage reached: StageDone on success.
	Stage Stage `json:"stage" yaml:"stage"`

	// Input is the path of the source PDF.
	Input string `json:"input" yaml:"input"`

	// Output is the path of the written HTML, empty when nothing was written.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Pages is the page count probed from the PDF, 0 if unknown.
	Pages int `json:"pages" yaml:"pages"`

	// Shape names the OCR response layout that was recognized.
	Shape string `json:"shape,omitempty" yaml:"shape,omitempty"`

	// ExtractedChars is the length in characters of the normalized OCR text.
	ExtractedChars int `json:"extracted_chars" yaml:"extracted_chars"`

	// MarkdownChars is the length in characters of the wrapped markdown.
	MarkdownChars int `json:"markdown_chars" yaml:"markdown_chars"`

	// BytesWritten is the size of the HTML file.
	BytesWritten int `json:"bytes_written" yaml:"bytes_written"`

	// Elapsed is the wall time of the run.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}
