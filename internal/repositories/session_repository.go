package repositories

import (
	"fmt"
	"sync"
	"time"

	"sabrosa/models"
	"sabrosa/pkg/logger"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a session survives without being touched.
// Idle visitors fall off so the store does not grow without bound.
const DefaultSessionTTL = 12 * time.Hour

// SessionRepositoryInterface stores per-visitor sessions. Sessions live in
// memory only: when the process stops, every cart is gone, which is exactly
// the contract of the storefront.
type SessionRepositoryInterface interface {
	Create() *models.Session
	Get(id string) (*models.Session, error)
	GetOrCreate(id string) *models.Session
}

type SessionRepository struct {
	logger   *logger.Logger
	ttl      time.Duration
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func NewSessionRepository(logger *logger.Logger) *SessionRepository {
	return NewSessionRepositoryWithTTL(DefaultSessionTTL, logger)
}

func NewSessionRepositoryWithTTL(ttl time.Duration, logger *logger.Logger) *SessionRepository {
	return &SessionRepository{
		logger:   logger.WithComponent("session_repository"),
		ttl:      ttl,
		sessions: make(map[string]*models.Session),
	}
}

// Create registers a fresh session with an empty cart. Sessions whose TTL
// has lapsed are swept here, so the store stays bounded by the number of
// visitors active within one TTL window.
func (r *SessionRepository) Create() *models.Session {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.New().String(),
		Lines:     []*models.CartLine{},
		CreatedAt: now,
		LastSeen:  now,
	}

	r.mu.Lock()
	r.evictExpiredLocked(now)
	r.sessions[session.ID] = session
	r.mu.Unlock()

	r.logger.Debug("Session created", "session_id", session.ID)
	return session
}

// Get returns the session with the given id and refreshes its idle clock.
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	if ok {
		session.LastSeen = time.Now()
	}
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("session with ID %s not found", id)
	}
	return session, nil
}

// evictExpiredLocked drops every session idle longer than the TTL. Caller
// holds r.mu.
func (r *SessionRepository) evictExpiredLocked(now time.Time) {
	evicted := 0
	for id, session := range r.sessions {
		if now.Sub(session.LastSeen) > r.ttl {
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug("Idle sessions evicted", "count", evicted)
	}
}

// GetOrCreate returns the session with the given id, or a fresh one when the
// id is empty or unknown (expired cookie, restarted server).
func (r *SessionRepository) GetOrCreate(id string) *models.Session {
	if id != "" {
		if session, err := r.Get(id); err == nil {
			return session
		}
	}
	return r.Create()
}
