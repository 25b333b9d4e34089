package metadata

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/metastore/internal/common"
	"github.com/dmitrijs2005/metastore/internal/logging"
	"github.com/dmitrijs2005/metastore/internal/models"
	"github.com/dmitrijs2005/metastore/internal/retryx"
)

/*************
 * Fakes
 *************/

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger          { return n }

// fakeAccessor simulates the remote store. Every Fetch serves a clone of the
// current document with a fresh per-state fingerprint; Commit consumes one
// scripted error per call (nil meaning success) and, on success, installs
// the committed document as the new state.
type fakeAccessor struct {
	doc        *models.Document
	fetchErr   error
	commitErrs []error

	fetches   int
	commits   int
	committed []*models.Document
}

func newFakeAccessor(items ...models.Item) *fakeAccessor {
	return &fakeAccessor{doc: &models.Document{Fingerprint: "fp-0", Items: items}}
}

func (f *fakeAccessor) Fetch(ctx context.Context) (*models.Document, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.doc.Clone(), nil
}

func (f *fakeAccessor) Commit(ctx context.Context, doc *models.Document) error {
	f.commits++
	f.committed = append(f.committed, doc.Clone())
	if len(f.commitErrs) > 0 {
		err := f.commitErrs[0]
		f.commitErrs = f.commitErrs[1:]
		if err != nil {
			return err
		}
	}
	next := doc.Clone()
	next.Fingerprint = fmt.Sprintf("fp-%d", f.commits)
	f.doc = next
	return nil
}

func conflictErr() error {
	return fmt.Errorf("%w: put: 412", common.ErrFingerprintMismatch)
}

func newTestStore(a Accessor) *Store {
	return NewStore(a, nopLogger{}, retryx.WithBaseDelay(time.Microsecond))
}

/*************
 * Driver
 *************/

func TestUpdate_ConflictsThenSuccess(t *testing.T) {
	fake := newFakeAccessor()
	fake.commitErrs = []error{conflictErr(), conflictErr(), conflictErr(), nil}

	var seen []string
	store := newTestStore(fake)
	err := store.Update(context.Background(), func(doc *models.Document) error {
		seen = append(seen, doc.Fingerprint)
		doc.Items = append(doc.Items, models.Item{Key: "k", Value: "v"})
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 4, fake.fetches)
	require.Equal(t, 4, fake.commits)
	// the callback ran once per attempt, against freshly fetched state
	require.Len(t, seen, 4)
	require.Len(t, fake.committed[3].Items, 1)
}

func TestUpdate_FatalCommitErrorNotRetried(t *testing.T) {
	fake := newFakeAccessor()
	fatal := errors.New("connection reset")
	fake.commitErrs = []error{fatal}

	store := newTestStore(fake)
	err := store.Update(context.Background(), func(doc *models.Document) error { return nil })

	require.ErrorIs(t, err, fatal)
	require.Equal(t, 1, fake.fetches)
	require.Equal(t, 1, fake.commits)
}

func TestUpdate_ExhaustedConflictsReturnLastConflict(t *testing.T) {
	fake := newFakeAccessor()
	for i := 0; i < 20; i++ {
		fake.commitErrs = append(fake.commitErrs, conflictErr())
	}

	store := newTestStore(fake)
	err := store.Update(context.Background(), func(doc *models.Document) error { return nil })

	require.ErrorIs(t, err, common.ErrFingerprintMismatch)
	require.Equal(t, retryx.DefaultMaxAttempts, fake.fetches)
	require.Equal(t, retryx.DefaultMaxAttempts, fake.commits)
}

func TestUpdate_FetchErrorPropagates(t *testing.T) {
	fake := newFakeAccessor()
	fake.fetchErr = errors.New("unreachable")

	store := newTestStore(fake)
	err := store.Update(context.Background(), func(doc *models.Document) error { return nil })

	require.ErrorContains(t, err, "unreachable")
	require.Equal(t, 0, fake.commits)
}

func TestUpdate_MutateErrorAbortsBeforeCommit(t *testing.T) {
	fake := newFakeAccessor()
	boom := errors.New("boom")

	store := newTestStore(fake)
	err := store.Update(context.Background(), func(doc *models.Document) error { return boom })

	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, fake.fetches)
	require.Equal(t, 0, fake.commits)
}
