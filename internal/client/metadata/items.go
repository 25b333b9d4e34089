package metadata

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/metastore/internal/common"
	"github.com/dmitrijs2005/metastore/internal/globx"
	"github.com/dmitrijs2005/metastore/internal/models"
)

// UpsertItem sets the value for key. When the key already exists the value
// of the LAST matching entry is replaced; otherwise a new entry is appended.
// The last-match rule matters when the document already carries duplicate
// keys: within a single document, last write wins.
func (s *Store) UpsertItem(ctx context.Context, key string, value string) error {
	return s.Update(ctx, func(doc *models.Document) error {
		last := -1
		for i := range doc.Items {
			if doc.Items[i].Key == key {
				last = i
			}
		}
		if last >= 0 {
			doc.Items[last].Value = value
			return nil
		}
		doc.Items = append(doc.Items, models.Item{Key: key, Value: value})
		return nil
	})
}

// AddItem appends {key, value} without checking for an existing key. The
// server rejects the resulting document with common.ErrDuplicateKey when the
// key already exists; that rejection is fatal and never retried.
func (s *Store) AddItem(ctx context.Context, key string, value string) error {
	return s.Update(ctx, func(doc *models.Document) error {
		doc.Items = append(doc.Items, models.Item{Key: key, Value: value})
		return nil
	})
}

// RemoveItem deletes the entry stored under key. It returns true when an
// entry was removed and false when the key was absent (the commit is still
// attempted in that case, so a concurrent writer is still detected).
//
// Finding more than one entry for the key means the store already violated
// the uniqueness assumption; RemoveItem then fails with
// common.ErrDuplicateEntries instead of silently deleting several entries,
// and no write happens.
func (s *Store) RemoveItem(ctx context.Context, key string) (bool, error) {
	removed := false
	err := s.Update(ctx, func(doc *models.Document) error {
		removed = false // a retry reruns this against a fresh document
		if len(doc.Items) == 0 {
			return nil
		}

		kept := doc.Items[:0:0]
		for _, item := range doc.Items {
			if item.Key != key {
				kept = append(kept, item)
			}
		}

		switch len(doc.Items) - len(kept) {
		case 0:
			return nil
		case 1:
			doc.Items = kept
			removed = true
			return nil
		default:
			return fmt.Errorf("%w: %s", common.ErrDuplicateEntries, key)
		}
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// FindItems returns all items whose key matches the glob-style pattern, in
// document order. This is a read-only operation: no write, no retry loop.
func (s *Store) FindItems(ctx context.Context, pattern string) ([]models.Item, error) {
	re, err := globx.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	fetchTotal.Inc()
	doc, err := s.accessor.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	var found []models.Item
	for _, item := range doc.Items {
		if re.MatchString(item.Key) {
			found = append(found, item)
		}
	}
	return found, nil
}

// GetItemValue returns the value stored under key and whether the key was
// present. With duplicate keys the LAST entry in document order wins.
func (s *Store) GetItemValue(ctx context.Context, key string) (string, bool, error) {
	fetchTotal.Inc()
	doc, err := s.accessor.Fetch(ctx)
	if err != nil {
		return "", false, err
	}

	value, ok := "", false
	for _, item := range doc.Items {
		if item.Key == key {
			value, ok = item.Value, true
		}
	}
	return value, ok, nil
}
