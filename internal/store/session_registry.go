package store

import (
	"fmt"
	"sync"
	"time"

	"ledger/internal/models"

	"github.com/google/uuid"
)

var ErrSessionNotFound = fmt.Errorf("session %w", models.ErrNotFound)

type UserFinder interface {
	FindByID(id string) (models.User, error)
}

// SessionRegistry keeps login sessions in memory only; they do not survive
// a restart and never expire on their own.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	users    UserFinder
	now      func() time.Time
}

func NewSessionRegistry(users UserFinder) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]models.Session),
		users:    users,
		now:      time.Now,
	}
}

// Create does not check that userID exists; resolution happens on read.
func (r *SessionRegistry) Create(userID string) (string, models.Session) {
	session := models.Session{
		UserID:    userID,
		CreatedAt: r.now().UnixMilli(),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.NewString()
	for {
		if _, taken := r.sessions[id]; !taken {
			break
		}
		id = uuid.NewString()
	}
	r.sessions[id] = session
	return id, session
}

func (r *SessionRegistry) Get(id string) (models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Resolve reads the session and then the current state of its user.
func (r *SessionRegistry) Resolve(id string) (models.Session, models.User, error) {
	session, ok := r.Get(id)
	if !ok {
		return models.Session{}, models.User{}, ErrSessionNotFound
	}
	user, err := r.users.FindByID(session.UserID)
	if err != nil {
		return models.Session{}, models.User{}, err
	}
	return session, user, nil
}

func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
