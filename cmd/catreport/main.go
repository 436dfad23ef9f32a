// Package main is the entry point for the catreport CLI.
// It turns a catalog export XML into a dated CSV report of current products.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"catreport/internal/core/apperror"
)

func main() {
	// Load .env if present; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "catreport: failed to load .env: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "catreport: %v\n", err)
		os.Exit(apperror.ExitCode(err))
	}
}
