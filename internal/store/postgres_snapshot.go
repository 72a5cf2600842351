package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ledger/internal/models"
)

const DefaultSnapshotKey = "users"

// PostgresSnapshot keeps the same JSON document as the file backend in a
// single jsonb row of ledger_snapshots.
type PostgresSnapshot struct {
	db  DB
	key string
}

func NewPostgresSnapshot(db DB, key string) *PostgresSnapshot {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &PostgresSnapshot{db: db, key: key}
}

func (s *PostgresSnapshot) Name() string { return "postgres" }

func (s *PostgresSnapshot) Load(ctx context.Context) ([]models.User, error) {
	var document []byte
	err := s.db.GetContext(ctx, &document, `SELECT document FROM ledger_snapshots WHERE id = $1`, s.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotMissing
		}
		return nil, fmt.Errorf("%w: query snapshot %q: %v", ErrSnapshotCorrupt, s.key, err)
	}
	var users []models.User
	if err := json.Unmarshal(document, &users); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot %q: %v", ErrSnapshotCorrupt, s.key, err)
	}
	return users, nil
}

func (s *PostgresSnapshot) Save(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	document, err := json.Marshal(users)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO ledger_snapshots (id, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query, s.key, string(document))
	return err
}
