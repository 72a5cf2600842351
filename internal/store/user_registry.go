package store

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"ledger/internal/models"

	"github.com/google/uuid"
)

var ErrUserNotFound = fmt.Errorf("user %w", models.ErrNotFound)

// UserRegistry owns every user record. A single RWMutex serializes all
// mutations so check-then-write sequences (phone uniqueness, balance
// checks) cannot interleave.
type UserRegistry struct {
	mu     sync.RWMutex
	users  []*models.User
	issued map[string]struct{}
	now    func() time.Time
}

func NewUserRegistry() *UserRegistry {
	return &UserRegistry{
		issued: make(map[string]struct{}),
		now:    time.Now,
	}
}

// Replace swaps the whole collection, used when a snapshot is loaded.
func (r *UserRegistry) Replace(users []models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make([]*models.User, 0, len(users))
	for _, u := range users {
		record := u.Clone()
		if record.Transactions == nil {
			record.Transactions = []models.Transaction{}
		}
		r.users = append(r.users, &record)
		r.issued[record.ID] = struct{}{}
	}
}

func (r *UserRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *UserRegistry) FindByID(id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, _ := r.findByIDLocked(id)
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *UserRegistry) FindByPhone(phone string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u := r.findByPhoneLocked(phone)
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return u.Clone(), nil
}

// RegisterOrLogin returns the user owning phone, refreshing its name, or
// creates one with the initial balance. The second result reports creation.
func (r *UserRegistry) RegisterOrLogin(name, phone string) (models.User, bool, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return models.User{}, false, fmt.Errorf("%w: name and phone are required", models.ErrInvalidRequest)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UnixMilli()
	if existing := r.findByPhoneLocked(phone); existing != nil {
		existing.Name = name
		existing.LastActive = now
		return existing.Clone(), false, nil
	}
	user := &models.User{
		ID:           r.newUserIDLocked(),
		Name:         name,
		Phone:        phone,
		Balance:      models.InitialBalance,
		IsActive:     true,
		RegisteredAt: now,
		LastActive:   now,
		Transactions: []models.Transaction{},
	}
	r.users = append(r.users, user)
	return user.Clone(), true, nil
}

func (r *UserRegistry) SetActive(id string, active bool) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, _ := r.findByIDLocked(id)
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	u.IsActive = active
	u.LastActive = r.now().UnixMilli()
	return u.Clone(), nil
}

func (r *UserRegistry) Delete(id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, idx := r.findByIDLocked(id)
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	r.users = append(r.users[:idx], r.users[idx+1:]...)
	return *u, nil
}

// Mutate runs fn against the stored record while holding the write lock.
// It is reserved for the ledger; a non-nil error from fn leaves the record
// as fn left it, so fn must validate before changing anything.
func (r *UserRegistry) Mutate(id string, fn func(*models.User) error) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, _ := r.findByIDLocked(id)
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	if err := fn(u); err != nil {
		return models.User{}, err
	}
	return u.Clone(), nil
}

// List returns every user in registration order.
func (r *UserRegistry) List() []models.User {
	return r.Snapshot()
}

// Snapshot deep-copies the collection under the read lock so callers can
// serialize it without holding the registry.
func (r *UserRegistry) Snapshot() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	return out
}

func (r *UserRegistry) Stats() models.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := models.Stats{TotalUsers: len(r.users)}
	for _, u := range r.users {
		if u.IsActive {
			stats.ActiveUsers++
		}
		stats.TotalBalance = addSaturating(stats.TotalBalance, u.Balance)
		stats.TotalTransactions += len(u.Transactions)
	}
	return stats
}

// addSaturating clamps at MaxInt64; balances are never negative.
func addSaturating(total, balance int64) int64 {
	if balance > math.MaxInt64-total {
		return math.MaxInt64
	}
	return total + balance
}

func (r *UserRegistry) findByIDLocked(id string) (*models.User, int) {
	for i, u := range r.users {
		if u.ID == id {
			return u, i
		}
	}
	return nil, -1
}

func (r *UserRegistry) findByPhoneLocked(phone string) *models.User {
	for _, u := range r.users {
		if u.Phone == phone {
			return u
		}
	}
	return nil
}

// newUserIDLocked never hands out an id seen before in this process,
// including ids of deleted users.
func (r *UserRegistry) newUserIDLocked() string {
	for {
		id := NewUserID(r.now())
		if _, taken := r.issued[id]; taken {
			continue
		}
		r.issued[id] = struct{}{}
		return id
	}
}

func NewUserID(at time.Time) string {
	return fmt.Sprintf("USER-%d-%s", at.UnixMilli(), uuid.NewString()[:8])
}

func NewTransactionID(at time.Time) string {
	return fmt.Sprintf("TRX-%d-%s", at.UnixMilli(), uuid.NewString()[:5])
}
