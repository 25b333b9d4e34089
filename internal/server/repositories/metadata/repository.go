// Package metadata provides server-side storage for project metadata
// documents: a PostgreSQL repository used in production and an in-memory
// one for tests.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/metastore/internal/models"
)

// Repository stores one metadata document per project, versioned by an
// opaque fingerprint.
type Repository interface {
	// Get returns the project's current document, including its
	// fingerprint. common.ErrNotFound when the project does not exist.
	Get(ctx context.Context, project string) (*models.Document, error)

	// CompareAndSet replaces the document if doc.Fingerprint matches the
	// stored fingerprint, and returns the newly issued fingerprint.
	// common.ErrFingerprintMismatch on a stale fingerprint,
	// common.ErrNotFound for an unknown project.
	CompareAndSet(ctx context.Context, project string, doc *models.Document) (string, error)

	// CreateProject registers a project with an empty document.
	CreateProject(ctx context.Context, project string) error

	// List returns up to maxResults project names after pageToken in
	// lexicographic order, plus the token for the next page ("" when the
	// listing is exhausted).
	List(ctx context.Context, pageToken string, maxResults int) ([]string, string, error)
}
