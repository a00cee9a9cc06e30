package repo

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/schema-studio/schema-studio/internal/modules/model"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepo is the session store. Sessions are keyed by their opaque id;
// Update replaces the stored record wholesale, so callers doing
// read-modify-write must serialize per session (the service layer does).
type SessionRepo interface {
	Create(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Update(ctx context.Context, s *model.Session) error
	// Delete reports whether the session existed.
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

// memorySessionRepo keeps sessions in a process-local map. No size bound
// and no expiration: restart clears everything, long uptimes grow without
// limit. The redis backend is the upgrade path.
type memorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{
		sessions: make(map[string]*model.Session),
	}
}

func (r *memorySessionRepo) Create(_ context.Context, s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *memorySessionRepo) Get(_ context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	// deep copy: handing out shared map backing storage would let two
	// callers race on the same session
	return s.Clone(), nil
}

func (r *memorySessionRepo) Update(_ context.Context, s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.sessions[s.ID]
	if !ok {
		return ErrSessionNotFound
	}
	s.CreatedAt = old.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok, nil
}

func (r *memorySessionRepo) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
