package store

import (
	"context"
	"errors"

	"ledger/internal/models"
)

var (
	ErrSnapshotMissing = errors.New("snapshot missing")
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")
)

// SnapshotBackend stores the full user collection as one document.
type SnapshotBackend interface {
	Name() string
	Load(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, users []models.User) error
}
