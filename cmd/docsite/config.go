// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docsite/internal/generate"
	"github.com/pdiddy/docsite/internal/ocr"
	"github.com/pdiddy/docsite/internal/secrets"
	"github.com/pdiddy/docsite/pkg/types"
)

const (
	defaultInput       = "my_document.pdf"
	defaultOutput      = "index.html"
	defaultLLMBaseURL  = "https://aistudio.baidu.com/llm/lmapi/v3"
	defaultModel       = "ernie-3.5-8k"
	defaultTemperature = 0.7
)

// configKeys maps persistent flags to viper keys.
var configKeys = map[string]string{
	"ocr-url":      "ocr.url",
	"ocr-token":    "ocr.token",
	"ocr-timeout":  "ocr.timeout",
	"llm-base-url": "generation.base_url",
	"llm-api-key":  "generation.api_key",
	"model":        "generation.model",
	"temperature":  "generation.temperature",
	"max-chars":    "generation.max_chars",
	"llm-timeout":  "generation.timeout",
	"input":        "input",
	"output":       "output",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

func registerConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("ocr-url", "", "OCR layout-parsing endpoint URL")
	f.String("ocr-token", "", "OCR access token (prefer DOCSITE_OCR_TOKEN or the secrets directory)")
	f.Duration("ocr-timeout", ocr.DefaultTimeout, "OCR request timeout")
	f.String("llm-base-url", defaultLLMBaseURL, "base URL of the OpenAI-compatible chat API")
	f.String("llm-api-key", "", "chat API key (defaults to the OCR token)")
	f.String("model", defaultModel, "chat model identifier")
	f.Float64("temperature", defaultTemperature, "sampling temperature")
	f.Int("max-chars", generate.DefaultMaxChars, "characters of markdown embedded in the prompt")
	f.Duration("llm-timeout", generate.DefaultTimeout, "chat request timeout")
	f.String("input", defaultInput, "PDF file to process")
	f.String("output", defaultOutput, "HTML file to write")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("log-format", "text", "log format: text or json")

	for name, key := range configKeys {
		if err := viper.BindPFlag(key, f.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// loadConfig resolves flags, environment, config file and secrets. A
// positional argument overrides the input path.
func loadConfig(args []string) (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}

	if len(args) > 0 {
		cfg.Input = args[0]
	}

	cfg.OCR.Token = loadedSecrets.Default(secrets.OCRToken, cfg.OCR.Token)
	cfg.Generation.APIKey = loadedSecrets.Default(secrets.LLMAPIKey, cfg.Generation.APIKey)
	if cfg.Generation.APIKey == "" {
		cfg.Generation.APIKey = cfg.OCR.Token
	}

	return cfg, nil
}

// newLogger builds the diagnostic logger writing to w.
func newLogger(cfg types.LogConfig, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log.level: %w", err)
	}
	logger.SetLevel(lvl)

	switch cfg.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log.format %q: want text or json", cfg.Format)
	}

	return logger, nil
}

var configCmd = &cobra.Command{
	Use:   "config [input.pdf]",
	Short: "Print the resolved configuration",
	Long: `Config prints the configuration a run would use, after merging flags,
environment, config file and secrets, as YAML. Credentials are masked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			return fmt.Errorf("marshaling configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
