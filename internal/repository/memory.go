package repository

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

type memorySession struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository keeps sessions in process memory. Sessions not
// written for ttl are treated as gone and removed by DeleteExpired.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemorySessionRepository(ttl, time.Now)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time) *memorySession {
	return &memorySession{
		sessions: make(map[string]entity.Session),
		ttl:      ttl,
		now:      now,
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	session.UpdatedAt = that.now().UTC()

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = *session

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	existingSession, ok := that.sessions[id]
	if !ok || that.isExpired(existingSession) {
		return nil, apperror.ErrSessionNotFound
	}

	return &existingSession, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	existingSession, ok := that.sessions[id]
	if !ok || that.isExpired(existingSession) {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

func (that *memorySession) DeleteExpired(_ context.Context) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	expired := lo.PickBy(that.sessions, func(_ string, session entity.Session) bool {
		return that.isExpired(session)
	})

	for id := range expired {
		delete(that.sessions, id)
	}

	return len(expired), nil
}

func (that *memorySession) isExpired(session entity.Session) bool {
	return that.now().Sub(session.UpdatedAt) >= that.ttl
}
