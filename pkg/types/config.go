// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single request, including reading the response body.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// OCRConfig holds settings for the OCR stage.
type OCRConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// URL is the layout-parsing endpoint that accepts the base64 upload.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// Token is sent as "Authorization: token <Token>".
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`
}

// Validate reports the first missing or malformed OCR setting.
func (c OCRConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("ocr.url is required")
	}
	if c.Token == "" {
		return fmt.Errorf("ocr.token is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("ocr.timeout must not be negative")
	}
	return nil
}

// GenerationConfig holds settings for the HTML generation stage.
type GenerationConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the root of an OpenAI-compatible API; the client appends
	// /chat/completions.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey is sent as a bearer token.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Model is the chat model identifier (e.g. "ernie-3.5-8k").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxChars caps how many characters of markdown are embedded in the
	// prompt (default 2000).
	MaxChars int `json:"max_chars" yaml:"max_chars" mapstructure:"max_chars"`
}

// Validate reports the first missing or malformed generation setting.
func (c GenerationConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("generation.base_url is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("generation.api_key is required")
	}
	if c.Model == "" {
		return fmt.Errorf("generation.model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("generation.temperature %v out of range [0,2]", c.Temperature)
	}
	if c.MaxChars <= 0 {
		return fmt.Errorf("generation.max_chars must be positive, got %d", c.MaxChars)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("generation.timeout must not be negative")
	}
	return nil
}

// LogConfig selects the diagnostic log level and format.
type LogConfig struct {
	// Level is a logrus level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	OCR        OCRConfig        `json:"ocr" yaml:"ocr" mapstructure:"ocr"`
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`

	// Input is the PDF to process.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the HTML file to write; existing content is replaced.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// Validate checks every stage configuration.
func (c PipelineConfig) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if err := c.OCR.Validate(); err != nil {
		return err
	}
	return c.Generation.Validate()
}

// Redacted returns a copy with credentials masked, for display.
func (c PipelineConfig) Redacted() PipelineConfig {
	if c.OCR.Token != "" {
		c.OCR.Token = redactedValue
	}
	if c.Generation.APIKey != "" {
		c.Generation.APIKey = redactedValue
	}
	return c
}

const redactedValue = "********"
