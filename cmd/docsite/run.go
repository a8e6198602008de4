// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/docsite/internal/generate"
	"github.com/pdiddy/docsite/internal/ocr"
	"github.com/pdiddy/docsite/internal/pipeline"
	"github.com/pdiddy/docsite/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [input.pdf]",
	Short: "Convert a PDF into a single-page website",
	Long: `Run uploads the PDF to the OCR service, extracts its text, wraps it in
markdown, asks the chat model for a styled HTML page and writes it to the
output path, replacing any existing file. Any failure aborts the run with
exit code 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	log := logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"input":  cfg.Input,
	})

	rec, err := ocr.NewClient(cfg.OCR)
	if err != nil {
		return err
	}
	gen, err := generate.NewClient(cfg.Generation)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("model", cfg.Generation.Model).Info("starting run")
	sum, err := pipeline.New(rec, gen, pipeline.WithLogger(log)).Run(ctx, pipeline.Request{
		InputPath:  cfg.Input,
		OutputPath: cfg.Output,
	})
	if err != nil {
		return err
	}

	printSummary(cmd, sum)
	return nil
}

func printSummary(cmd *cobra.Command, sum *types.RunSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, successStyle.Render("Website generated: "+sum.Output))
	fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("%d page(s), %d characters extracted (%s), %d bytes written in %s",
		sum.Pages, sum.ExtractedChars, sum.Shape, sum.BytesWritten, sum.Elapsed.Round(time.Millisecond))))
}
