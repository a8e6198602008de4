// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one PDF through OCR, normalization, markdown wrapping,
// HTML generation and output, in that order. Any failure ends the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/docsite/internal/convert"
	"github.com/pdiddy/docsite/internal/load"
	"github.com/pdiddy/docsite/internal/ocr"
	"github.com/pdiddy/docsite/internal/output"
	"github.com/pdiddy/docsite/pkg/types"
)

// Recognizer uploads a document to an OCR service and returns the raw JSON
// response. *ocr.Client implements it.
type Recognizer interface {
	Recognize(ctx context.Context, data []byte) ([]byte, error)
}

// Generator turns markdown into HTML. *generate.Client implements it.
type Generator interface {
	Generate(ctx context.Context, markdown string) (string, error)
}

// StageError records the stage at which a run failed.
type StageError struct {
	Stage types.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Request names the input PDF and the HTML file to produce.
type Request struct {
	InputPath  string
	OutputPath string
}

// Pipeline holds the stage clients for a run.
type Pipeline struct {
	recognizer Recognizer
	generator  Generator
	logger     logrus.FieldLogger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for stage transitions and warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New builds a pipeline. gen may be nil when only Extract is used.
func New(rec Recognizer, gen Generator, opts ...Option) *Pipeline {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Pipeline{
		recognizer: rec,
		generator:  gen,
		logger:     discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every stage and writes the HTML to req.OutputPath. The returned
// summary is never nil; on failure its Stage is StageFailed and the error is a
// *StageError wrapping the component error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*types.RunSummary, error) {
	start := time.Now()
	sum := &types.RunSummary{Input: req.InputPath}
	defer func() { sum.Elapsed = time.Since(start) }()

	markdown, err := p.extract(ctx, req.InputPath, sum)
	if err != nil {
		return sum, err
	}

	p.enter(sum, types.StageGenerate)
	if p.generator == nil {
		return sum, p.fail(sum, errors.New("no generator configured"))
	}
	html, err := p.generator.Generate(ctx, markdown)
	if err != nil {
		return sum, p.fail(sum, err)
	}

	p.enter(sum, types.StageWrite)
	n, err := output.Write(req.OutputPath, html)
	if err != nil {
		return sum, p.fail(sum, err)
	}
	sum.Output = req.OutputPath
	sum.BytesWritten = n

	p.enter(sum, types.StageDone)
	p.logger.WithFields(logrus.Fields{
		"output": req.OutputPath,
		"bytes":  n,
	}).Info("website generated")
	return sum, nil
}

// Extract runs the stages up to and including markdown wrapping and returns
// the markdown. It never calls the generator or touches any output file.
func (p *Pipeline) Extract(ctx context.Context, inputPath string) (string, *types.RunSummary, error) {
	start := time.Now()
	sum := &types.RunSummary{Input: inputPath}
	defer func() { sum.Elapsed = time.Since(start) }()

	markdown, err := p.extract(ctx, inputPath, sum)
	if err != nil {
		return "", sum, err
	}
	p.enter(sum, types.StageDone)
	return markdown, sum, nil
}

func (p *Pipeline) extract(ctx context.Context, inputPath string, sum *types.RunSummary) (string, error) {
	p.enter(sum, types.StageLoading)
	doc, err := load.File(inputPath, p.logger)
	if err != nil {
		return "", p.fail(sum, err)
	}
	sum.Pages = doc.Pages
	p.logger.WithFields(logrus.Fields{
		"bytes": len(doc.Data),
		"pages": doc.Pages,
	}).Debug("input loaded")

	p.enter(sum, types.StageOCR)
	body, err := p.recognizer.Recognize(ctx, doc.Data)
	if err != nil {
		return "", p.fail(sum, err)
	}

	p.enter(sum, types.StageNormalize)
	text, ext, err := ocr.Normalize(body)
	if ext != nil {
		sum.Shape = ext.Shape()
		if ext.Degraded() {
			p.logger.WithField("shape", ext.Shape()).Warn("layout parsing result missing, using standard OCR fallback")
		}
	}
	if err != nil {
		return "", p.fail(sum, err)
	}
	sum.ExtractedChars = utf8.RuneCountInString(text)
	p.logger.WithField("chars", sum.ExtractedChars).Info("text extracted")

	markdown := convert.Wrap(text)
	sum.MarkdownChars = utf8.RuneCountInString(markdown)
	return markdown, nil
}

func (p *Pipeline) enter(sum *types.RunSummary, stage types.Stage) {
	sum.Stage = stage
	p.logger.WithField("stage", stage).Debug("entering stage")
}

// fail moves the run to StageFailed and wraps err with the stage it happened in.
func (p *Pipeline) fail(sum *types.RunSummary, err error) error {
	stage := sum.Stage
	sum.Stage = types.StageFailed
	p.logger.WithError(err).WithField("stage", stage).Error("stage failed")
	return &StageError{Stage: stage, Err: err}
}
