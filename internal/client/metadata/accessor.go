// Package metadata implements the client side of the fingerprint-versioned
// metadata protocol: a transport-level Accessor, an optimistic update driver
// that retries fingerprint conflicts, and the item-level operations built on
// top of it.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/metastore/internal/models"
)

// Accessor reads and writes the remote metadata document.
//
// Fetch returns the current document together with its fingerprint. Commit
// submits a replacement document, presenting doc.Fingerprint as the expected
// current version; the server rejects the write when the fingerprint is
// stale. Implementations map failures onto the internal/common sentinels:
// common.ErrNotFound, common.ErrFingerprintMismatch, common.ErrDuplicateKey.
// Anything else is a transport failure and is returned as-is.
type Accessor interface {
	Fetch(ctx context.Context) (*models.Document, error)
	Commit(ctx context.Context, doc *models.Document) error
}
