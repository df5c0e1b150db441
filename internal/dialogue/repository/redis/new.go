package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"bankbot/internal/dialogue/repository"
	"bankbot/internal/model"
	"bankbot/pkg/log"
)

const (
	keyPrefix  = "bankbot:session:"
	DefaultTTL = 30 * time.Minute
)

type implRepository struct {
	client goredis.UniversalClient
	ttl    time.Duration
	l      log.Logger
}

var _ repository.Repository = (*implRepository)(nil)

// New creates a session store that keeps each session as a JSON value with a
// sliding TTL.
func New(client goredis.UniversalClient, ttl time.Duration, l log.Logger) repository.Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &implRepository{client: client, ttl: ttl, l: l}
}

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient creates a go-redis client and pings it.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func key(id string) string {
	return keyPrefix + id
}

func (r *implRepository) GetSession(ctx context.Context, id string) (model.Session, error) {
	raw, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.Session{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "internal.dialogue.repository.redis.GetSession: %v", err)
		return model.Session{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}

	var s model.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		// A corrupt value is treated as a fresh session.
		r.l.Warnf(ctx, "internal.dialogue.repository.redis.GetSession: dropping unreadable session %s: %v", id, err)
		return model.Session{}, nil
	}
	return s, nil
}

func (r *implRepository) SaveSession(ctx context.Context, session model.Session) error {
	if session.ID == "" {
		return repository.ErrInvalidSession
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
	}
	if err := r.client.Set(ctx, key(session.ID), raw, r.ttl).Err(); err != nil {
		r.l.Errorf(ctx, "internal.dialogue.repository.redis.SaveSession: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
	}
	return nil
}

func (r *implRepository) DeleteSession(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, key(id)).Err(); err != nil {
		r.l.Errorf(ctx, "internal.dialogue.repository.redis.DeleteSession: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToDelete, err)
	}
	return nil
}
