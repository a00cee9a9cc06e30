package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/schema-studio/schema-studio/internal/modules/model"
)

const sessionKeyPrefix = "schema-studio:session:"

// redisSessionRepo stores each session as a JSON blob under
// schema-studio:session:<id>. TTL 0 keeps sessions forever, matching the
// memory backend; a positive TTL is refreshed on every write.
type redisSessionRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionRepo(rdb *redis.Client, ttl time.Duration) SessionRepo {
	return &redisSessionRepo{rdb: rdb, ttl: ttl}
}

func (r *redisSessionRepo) key(id string) string {
	return sessionKeyPrefix + id
}

func (r *redisSessionRepo) set(ctx context.Context, s *model.Session) error {
	raw, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.rdb.Set(ctx, r.key(s.ID), raw, r.ttl).Err()
}

func (r *redisSessionRepo) Create(ctx context.Context, s *model.Session) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	return r.set(ctx, s)
}

func (r *redisSessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	raw, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var s model.Session
	if err := sonic.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *redisSessionRepo) Update(ctx context.Context, s *model.Session) error {
	old, err := r.Get(ctx, s.ID)
	if err != nil {
		return err
	}
	s.CreatedAt = old.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	return r.set(ctx, s)
}

func (r *redisSessionRepo) Delete(ctx context.Context, id string) (bool, error) {
	n, err := r.rdb.Del(ctx, r.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return n > 0, nil
}

func (r *redisSessionRepo) List(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		cursor uint64
	)
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scan sessions: %w", err)
		}
		for _, k := range keys {
			ids = append(ids, k[len(sessionKeyPrefix):])
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(ids)
	return ids, nil
}
