// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/docsite/internal/ocr"
	"github.com/pdiddy/docsite/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract [input.pdf]",
	Short: "Print the markdown extracted from a PDF",
	Long: `Extract runs the OCR and normalization stages only and prints the
markdown that run would send to the chat model. No output file is written and
no generation settings are needed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		if cfg.Input == "" {
			return fmt.Errorf("invalid configuration: input is required")
		}
		if err := cfg.OCR.Validate(); err != nil {
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

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rec, err := ocr.NewClient(cfg.OCR)
		if err != nil {
			return err
		}

		markdown, _, err := pipeline.New(rec, nil, pipeline.WithLogger(log)).Extract(ctx, cfg.Input)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), markdown)
		return err
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
