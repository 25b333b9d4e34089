package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/metastore/internal/common"
	"github.com/dmitrijs2005/metastore/internal/dbx"
	"github.com/dmitrijs2005/metastore/internal/models"
)

// PostgresRepository implements Repository over PostgreSQL. Documents are a
// projects row (name, fingerprint) plus position-ordered metadata_items
// rows; the compare-and-set runs in one transaction with the project row
// locked.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to the given database.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, project string) (*models.Document, error) {
	doc := &models.Document{}

	err := r.db.QueryRowContext(ctx,
		`SELECT fingerprint FROM projects WHERE name = $1`, project,
	).Scan(&doc.Fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM metadata_items WHERE project_name = $1 ORDER BY position`, project)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.Key, &item.Value); err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *PostgresRepository) CompareAndSet(ctx context.Context, project string, doc *models.Document) (string, error) {
	newFingerprint := uuid.NewString()

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var current string
		err := tx.QueryRowContext(ctx,
			`SELECT fingerprint FROM projects WHERE name = $1 FOR UPDATE`, project,
		).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		if current != doc.Fingerprint {
			return common.ErrFingerprintMismatch
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM metadata_items WHERE project_name = $1`, project); err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}
		for i, item := range doc.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO metadata_items (project_name, position, key, value) VALUES ($1, $2, $3, $4)`,
				project, i, item.Key, item.Value); err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE projects SET fingerprint = $2 WHERE name = $1`, project, newFingerprint); err != nil {
			return fmt.Errorf("failed to update fingerprint: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return newFingerprint, nil
}

func (r *PostgresRepository) CreateProject(ctx context.Context, project string) error {
	// ON CONFLICT DO NOTHING keeps the stored fingerprint for an existing
	// project, making creation idempotent.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name, fingerprint) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		project, uuid.NewString())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, pageToken string, maxResults int) ([]string, string, error) {
	if maxResults <= 0 {
		maxResults = 100
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM projects WHERE name > $1 ORDER BY name LIMIT $2`, pageToken, maxResults)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, "", err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(names) == maxResults {
		next = names[len(names)-1]
	}
	return names, next, nil
}
