// Package export writes the downloadable document of a successful classification.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/potax/internal/common"
	"github.com/Veraticus/potax/internal/flow"
)

// DefaultFilename is the suggested name of the export document.
const DefaultFilename = "po_classification.json"

// MIMEType is the content type of the export document.
const MIMEType = "application/json"

// Document returns the export bytes for o, or ErrNothingToExport unless o
// is a success.
func Document(o flow.Outcome) ([]byte, error) {
	doc, err := o.ExportJSON()
	if err != nil {
		if errors.Is(err, flow.ErrNotExportable) {
			return nil, fmt.Errorf("%w: outcome is %s", common.ErrNothingToExport, o.State)
		}
		return nil, err
	}
	return doc, nil
}

// Write writes the export document of o to w.
func Write(w io.Writer, o flow.Outcome) error {
	doc, err := Document(o)
	if err != nil {
		return err
	}
	if _, err := w.Write(doc); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteFile writes the export document of o to path, creating parent
// directories. A directory path receives DefaultFilename inside it.
func WriteFile(path string, o flow.Outcome) (string, error) {
	doc, err := Document(o)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = DefaultFilename
	}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
