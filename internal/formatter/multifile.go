package formatter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tordrt/crudgen/internal/schema"
)

// MultiFileFormatter writes artifacts under a root directory
type MultiFileFormatter struct {
	OutputDir string
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir string) *MultiFileFormatter {
	return &MultiFileFormatter{OutputDir: outputDir}
}

// Path returns where an artifact lands on disk
func (f *MultiFileFormatter) Path(a schema.Artifact) string {
	return filepath.Join(f.OutputDir, filepath.FromSlash(a.Filename))
}

// Write writes the artifacts one after another, creating directories as
// needed and overwriting existing files. It stops at the first failure and
// returns the paths written before it; those files are left in place.
func (f *MultiFileFormatter) Write(artifacts []schema.Artifact) ([]string, error) {
	written := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := f.Path(a)

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", a.Filename, err)
		}
		if err := os.WriteFile(path, []byte(a.Content), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", a.Filename, err)
		}

		written = append(written, path)
	}
	return written, nil
}
