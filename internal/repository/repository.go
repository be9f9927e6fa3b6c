package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-insights/internal/models"
)

// Source provides the raw JSON document of a single domain
type Source interface {
	Document(ctx context.Context, domain models.Domain) ([]byte, error)
	Name() string
}

// ErrDocumentNotFound is returned when a source has no document for a domain
var ErrDocumentNotFound = errors.New("document not found")

// Repository reads domain documents from PostgreSQL
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Name identifies the source in logs and health output
func (r *Repository) Name() string {
	return "postgres"
}

// Document retrieves the JSON document stored for domain
func (r *Repository) Document(ctx context.Context, domain models.Domain) ([]byte, error) {
	var doc []byte
	query := `
		SELECT document
		FROM finance.domain_documents
		WHERE domain = $1`
	err := r.db.QueryRowContext(ctx, query, string(domain)).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", domain, ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s document: %w", domain, err)
	}
	return doc, nil
}
