// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/shiftplan/internal/ports/secondary"
)

// DocumentAdapter implements secondary.DocumentWriter by writing text files
// into an output directory.
type DocumentAdapter struct {
	outputDir string
}

// NewDocumentAdapter creates a new filesystem document adapter.
// If outputDir is empty, defaults to ./output.
func NewDocumentAdapter(outputDir string) *DocumentAdapter {
	if outputDir == "" {
		outputDir = "output"
	}
	return &DocumentAdapter{outputDir: outputDir}
}

// OutputDir returns the directory documents are written to.
func (a *DocumentAdapter) OutputDir() string {
	return a.outputDir
}

// WriteDocument writes content to <outputDir>/<name>, replacing any
// existing file, and returns the path written.
func (a *DocumentAdapter) WriteDocument(ctx context.Context, name, content string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid document name %q", name)
	}

	if err := os.MkdirAll(a.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(a.outputDir, name)

	// Write to a temp file first so a failed write never leaves a truncated document
	tmp, err := os.CreateTemp(a.outputDir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("failed to set document permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move document into place: %w", err)
	}

	return path, nil
}

// Ensure DocumentAdapter implements the interface
var _ secondary.DocumentWriter = (*DocumentAdapter)(nil)
