// Package services holds the server-side application logic between the HTTP
// layer and the repositories.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/metastore/internal/logging"
	"github.com/dmitrijs2005/metastore/internal/models"
	"github.com/dmitrijs2005/metastore/internal/server/repositories/metadata"

	"github.com/dmitrijs2005/metastore/internal/common"
)

// DuplicateKeyError rejects a submitted document that carries two items with
// the same key. It matches common.ErrDuplicateKey via errors.Is.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("Metadata has duplicate key %s", e.Key)
}

func (e *DuplicateKeyError) Unwrap() error {
	return common.ErrDuplicateKey
}

// MetadataService validates and persists metadata documents and hands each
// committed revision to the archiver.
type MetadataService struct {
	repo     metadata.Repository
	archiver Archiver
	logger   logging.Logger
}

func NewMetadataService(repo metadata.Repository, archiver Archiver, logger logging.Logger) *MetadataService {
	return &MetadataService{
		repo:     repo,
		archiver: archiver,
		logger:   logger.With("module", "metadata_service"),
	}
}

// GetDocument returns the project's current document.
func (s *MetadataService) GetDocument(ctx context.Context, project string) (*models.Document, error) {
	return s.repo.Get(ctx, project)
}

// SaveDocument validates the submitted document and replaces the stored one
// if the presented fingerprint is still current. It returns the newly issued
// fingerprint.
//
// Documents with duplicate keys are rejected before touching storage: the
// uniqueness invariant is enforced at the write boundary, pre-existing
// violations notwithstanding.
func (s *MetadataService) SaveDocument(ctx context.Context, project string, doc *models.Document) (string, error) {
	seen := make(map[string]struct{}, len(doc.Items))
	for _, item := range doc.Items {
		if _, ok := seen[item.Key]; ok {
			return "", &DuplicateKeyError{Key: item.Key}
		}
		seen[item.Key] = struct{}{}
	}

	fingerprint, err := s.repo.CompareAndSet(ctx, project, doc)
	if err != nil {
		return "", err
	}

	// Archiving is best effort: a failed archive never fails the commit.
	revision := doc.Clone()
	revision.Fingerprint = fingerprint
	if err := s.archiver.ArchiveRevision(ctx, project, revision); err != nil {
		s.logger.Error(ctx, "failed to archive revision", "project", project, "error", err.Error())
	}

	return fingerprint, nil
}

// CreateProject registers a project with an empty metadata document. It is
// idempotent.
func (s *MetadataService) CreateProject(ctx context.Context, project string) error {
	return s.repo.CreateProject(ctx, project)
}

// ListProjects returns one page of project names.
func (s *MetadataService) ListProjects(ctx context.Context, pageToken string, maxResults int) ([]string, string, error) {
	return s.repo.List(ctx, pageToken, maxResults)
}
