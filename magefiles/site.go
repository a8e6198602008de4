//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Site builds the CLI and runs the full pipeline on $DOCSITE_INPUT
// (default my_document.pdf), writing $DOCSITE_OUTPUT (default index.html).
func Site() error {
	mg.Deps(Build)

	input := os.Getenv("DOCSITE_INPUT")
	if input == "" {
		input = "my_document.pdf"
	}
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input %s: %w", input, err)
	}

	fmt.Printf("[site] Generating website from %s\n", input)
	return sh.RunV(filepath.Join(binDir, binName), "run", input)
}
