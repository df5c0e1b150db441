package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"bankbot/internal/dialogue/repository"
	"bankbot/internal/model"
)

const (
	DefaultCapacity = 10000
	DefaultTTL      = 30 * time.Minute
)

type implRepository struct {
	sessions *expirable.LRU[string, model.Session]
}

var _ repository.Repository = (*implRepository)(nil)

// New creates an in-process session store. Sessions idle for longer than ttl
// are dropped, and the least recently used ones are evicted past capacity.
func New(capacity int, ttl time.Duration) repository.Repository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &implRepository{
		sessions: expirable.NewLRU[string, model.Session](capacity, nil, ttl),
	}
}

func (r *implRepository) GetSession(ctx context.Context, id string) (model.Session, error) {
	s, ok := r.sessions.Get(id)
	if !ok {
		return model.Session{}, nil
	}
	return s, nil
}

func (r *implRepository) SaveSession(ctx context.Context, session model.Session) error {
	if session.ID == "" {
		return repository.ErrInvalidSession
	}
	r.sessions.Add(session.ID, session)
	return nil
}

func (r *implRepository) DeleteSession(ctx context.Context, id string) error {
	r.sessions.Remove(id)
	return nil
}
