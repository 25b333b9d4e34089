package metadata

import (
	"context"
	"errors"

	"github.com/VictoriaMetrics/metrics"

	"github.com/dmitrijs2005/metastore/internal/common"
	"github.com/dmitrijs2005/metastore/internal/logging"
	"github.com/dmitrijs2005/metastore/internal/models"
	"github.com/dmitrijs2005/metastore/internal/retryx"
)

var (
	fetchTotal    = metrics.NewCounter("metadata_fetch_total")
	commitTotal   = metrics.NewCounter("metadata_commit_total")
	conflictTotal = metrics.NewCounter("metadata_commit_conflict_total")
)

// Store is the optimistic update driver. It owns no state besides the
// accessor: correctness under concurrent writers comes entirely from the
// server's fingerprint check, not from any local lock.
type Store struct {
	accessor  Accessor
	logger    logging.Logger
	retryOpts []retryx.Option
}

// NewStore wraps an accessor. retryOpts override the default conflict-retry
// policy (10 attempts, exponential backoff capped at 10s).
func NewStore(a Accessor, l logging.Logger, retryOpts ...retryx.Option) *Store {
	return &Store{
		accessor:  a,
		logger:    l.With("module", "metadata_store"),
		retryOpts: retryOpts,
	}
}

// Update carries out one logical metadata save. Each attempt fetches the
// freshest document (and with it the freshest fingerprint), lets mutate
// modify it in place, and commits the result. A stale-fingerprint rejection
// discards the attempt entirely and reruns the cycle from a new fetch; any
// other failure, including an error returned by mutate itself, propagates
// immediately.
//
// mutate must be safe to invoke multiple times: the losing attempt of a
// conflict leaves no in-memory state behind.
func (s *Store) Update(ctx context.Context, mutate func(doc *models.Document) error) error {
	save := func(ctx context.Context) error {
		fetchTotal.Inc()
		doc, err := s.accessor.Fetch(ctx)
		if err != nil {
			return err
		}

		if err := mutate(doc); err != nil {
			return err
		}

		commitTotal.Inc()
		err = s.accessor.Commit(ctx, doc)
		if errors.Is(err, common.ErrFingerprintMismatch) {
			conflictTotal.Inc()
			s.logger.Warn(ctx, "metadata commit lost the race, refetching", "fingerprint", doc.Fingerprint)
		}
		return err
	}

	return retryx.Do(ctx, save, isConflict, s.retryOpts...)
}

// isConflict is the retry classifier: only the fingerprint-mismatch
// rejection is worth another round trip.
func isConflict(err error) bool {
	return errors.Is(err, common.ErrFingerprintMismatch)
}
