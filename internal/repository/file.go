package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Dan9191/finance-insights/internal/models"
)

// FileSource reads one document per domain from a directory.
// <domain>.json is preferred; <domain>.xml is used when the JSON file is absent.
type FileSource struct {
	dir string
}

// NewFileSource creates a source rooted at dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Name identifies the source in logs and health output
func (s *FileSource) Name() string {
	return "file:" + s.dir
}

// Document reads and, for XML, converts the document of domain
func (s *FileSource) Document(ctx context.Context, domain models.Domain) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jsonPath := filepath.Join(s.dir, string(domain)+".json")
	raw, err := os.ReadFile(jsonPath)
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", jsonPath, err)
	}

	xmlPath := filepath.Join(s.dir, string(domain)+".xml")
	raw, err = os.ReadFile(xmlPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w in %s", domain, ErrDocumentNotFound, s.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", xmlPath, err)
	}

	doc, err := XMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", xmlPath, err)
	}
	return doc, nil
}
