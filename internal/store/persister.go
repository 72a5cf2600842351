package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"ledger/internal/metrics"
	"ledger/internal/models"

	"go.uber.org/zap"
)

const defaultSaveTimeout = 5 * time.Second

type SnapshotSource interface {
	Snapshot() []models.User
	Replace(users []models.User)
}

// Persister moves the user collection between the registry and a backend.
// Failures are logged and never returned to request handlers; the
// in-memory registry stays authoritative until the next successful save.
type Persister struct {
	backend SnapshotBackend
	users   SnapshotSource
	logger  *zap.Logger
	timeout time.Duration

	// mu guards running and pending. Only one goroutine writes at a time;
	// callers arriving mid-write mark pending and return at once, and the
	// writer takes one more snapshot before it stops.
	mu      sync.Mutex
	running bool
	pending bool
}

func NewPersister(backend SnapshotBackend, users SnapshotSource, logger *zap.Logger, timeout time.Duration) *Persister {
	if timeout <= 0 {
		timeout = defaultSaveTimeout
	}
	return &Persister{
		backend: backend,
		users:   users,
		logger:  logger,
		timeout: timeout,
	}
}

// Load fills the registry from the backend. A missing snapshot starts an
// empty collection and writes it immediately; an unreadable one starts
// empty without touching what is stored.
func (p *Persister) Load(ctx context.Context) {
	users, err := p.backend.Load(ctx)
	switch {
	case err == nil:
		p.users.Replace(users)
		p.logger.Info("loaded users", zap.String("backend", p.backend.Name()), zap.Int("count", len(users)))
	case errors.Is(err, ErrSnapshotMissing):
		p.users.Replace(nil)
		p.logger.Info("no snapshot found, starting empty", zap.String("backend", p.backend.Name()))
		p.Save(ctx)
	default:
		p.users.Replace(nil)
		p.logger.Error("load snapshot failed, starting empty", zap.String("backend", p.backend.Name()), zap.Error(err))
	}
}

// Save writes the current registry state. When another save is already
// writing, Save returns immediately and that writer saves again with a
// snapshot taken after this call. It does not retry.
func (p *Persister) Save(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.pending = true
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	for {
		_ = p.save(ctx)

		p.mu.Lock()
		if !p.pending {
			p.running = false
			p.mu.Unlock()
			return
		}
		p.pending = false
		p.mu.Unlock()
	}
}

func (p *Persister) save(ctx context.Context) error {
	snapshot := p.users.Snapshot()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err := p.backend.Save(ctx, snapshot)
	metrics.RecordSave(p.backend.Name(), err, len(snapshot))
	if err != nil {
		p.logger.Error("save snapshot failed", zap.String("backend", p.backend.Name()), zap.Error(err))
	}
	return err
}
