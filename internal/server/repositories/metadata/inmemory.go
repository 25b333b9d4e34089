package metadata

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/metastore/internal/common"
	"github.com/dmitrijs2005/metastore/internal/models"
)

// InMemoryRepository is a Repository for tests and local development. It
// honors the same fingerprint contract as the PostgreSQL implementation.
type InMemoryRepository struct {
	mu   sync.Mutex
	docs map[string]*models.Document
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{docs: make(map[string]*models.Document)}
}

// Seed installs a document verbatim, bypassing the fingerprint check. Tests
// use it to construct pre-existing states, including invalid ones such as
// duplicate keys.
func (r *InMemoryRepository) Seed(project string, doc *models.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[project] = doc.Clone()
}

func (r *InMemoryRepository) Get(ctx context.Context, project string) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[project]
	if !ok {
		return nil, common.ErrNotFound
	}
	return doc.Clone(), nil
}

func (r *InMemoryRepository) CompareAndSet(ctx context.Context, project string, doc *models.Document) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.docs[project]
	if !ok {
		return "", common.ErrNotFound
	}
	if current.Fingerprint != doc.Fingerprint {
		return "", common.ErrFingerprintMismatch
	}

	stored := doc.Clone()
	stored.Fingerprint = uuid.NewString()
	r.docs[project] = stored
	return stored.Fingerprint, nil
}

func (r *InMemoryRepository) CreateProject(ctx context.Context, project string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[project]; ok {
		return nil
	}
	r.docs[project] = &models.Document{Fingerprint: uuid.NewString()}
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context, pageToken string, maxResults int) ([]string, string, error) {
	if maxResults <= 0 {
		maxResults = 100
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for name := range r.docs {
		if name > pageToken {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	next := ""
	if len(names) > maxResults {
		names = names[:maxResults]
		next = names[len(names)-1]
	} else if len(names) == maxResults {
		next = names[len(names)-1]
	}
	return names, next, nil
}
