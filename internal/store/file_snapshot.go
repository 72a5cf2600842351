package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"ledger/internal/models"
)

type FileSnapshot struct {
	path string
	now  func() time.Time
}

func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path, now: time.Now}
}

func (s *FileSnapshot) Name() string { return "file" }

func (s *FileSnapshot) Path() string { return s.path }

// Load reads the document. A document that does not decode is copied to a
// sibling "<name>.corrupt-<ms>" file so later saves cannot destroy the
// only copy.
func (s *FileSnapshot) Load(ctx context.Context) ([]models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSnapshotMissing
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrSnapshotCorrupt, s.path, err)
	}
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().UnixMilli())
		if copyErr := os.WriteFile(backup, data, 0o600); copyErr != nil {
			return nil, fmt.Errorf("%w: decode %s: %v (backup failed: %v)", ErrSnapshotCorrupt, s.path, err, copyErr)
		}
		return nil, fmt.Errorf("%w: decode %s: %v (copied to %s)", ErrSnapshotCorrupt, s.path, err, backup)
	}
	return users, nil
}

// Save writes to a temporary file in the same directory and renames it
// over the target, so readers see either the old or the new document.
func (s *FileSnapshot) Save(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}
