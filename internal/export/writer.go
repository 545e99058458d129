// Package export names and writes converted output as downloadable files.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tengjizhang/linkconv/internal/emit"
)

// ErrNothingToDownload is returned when the converted output is empty.
var ErrNothingToDownload = errors.New("Nothing to download yet.")

// Writer writes converted output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting outputDir, the working directory when
// empty.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Filename is the download name for a format: links-<section>.<ext>, or
// links.<ext> when sectionID is zero.
func Filename(sectionID int64, f emit.Format) string {
	if sectionID <= 0 {
		return "links." + f.Extension()
	}
	return fmt.Sprintf("links-%d.%s", sectionID, f.Extension())
}

// ContentDisposition is the attachment header value for a download.
func ContentDisposition(sectionID int64, f emit.Format) string {
	return fmt.Sprintf("attachment; filename=%q", Filename(sectionID, f))
}

// CheckContent returns ErrNothingToDownload when content is blank.
func CheckContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrNothingToDownload
	}
	return nil
}

// Write stores content under the download name and returns its path.
func (w *Writer) Write(sectionID int64, f emit.Format, content string) (string, error) {
	if err := CheckContent(content); err != nil {
		return "", err
	}
	path := filepath.Join(w.OutputDir, Filename(sectionID, f))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
