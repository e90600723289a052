package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gstbill-erp/gstbill/internal/shared"
)

// RedisRepository implements Repository on a shared Redis keyspace. One
// draft is one key holding one JSON blob, so saving or deleting a draft is
// atomic per key but no operation spans multiple drafts. Two sessions
// saving concurrently for the same user can race on the next sequence
// number; that is an accepted limitation, last writer wins.
type RedisRepository struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisRepository constructs the Redis-backed draft store.
func NewRedisRepository(client *redis.Client, logger *slog.Logger) *RedisRepository {
	return &RedisRepository{client: client, logger: logger}
}

var _ Repository = (*RedisRepository)(nil)

// Save stores the snapshot under the user's next free sequence number.
// Drafts never expire.
func (r *RedisRepository) Save(ctx context.Context, userID int64, snap Snapshot) (string, error) {
	keys, err := r.scanKeys(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("drafts: scan keys: %w", err)
	}

	next := 1
	for _, key := range keys {
		if seq, ok := SequenceOf(userID, key); ok && seq >= next {
			next = seq + 1
		}
	}

	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("drafts: marshal snapshot: %w", err)
	}

	key := Key(userID, next)
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return "", fmt.Errorf("drafts: store %s: %w", key, err)
	}
	return key, nil
}

// List returns every readable draft for the user, oldest sequence first.
func (r *RedisRepository) List(ctx context.Context, userID int64) ([]Draft, error) {
	keys, err := r.scanKeys(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("drafts: scan keys: %w", err)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := SequenceOf(userID, keys[i])
		b, _ := SequenceOf(userID, keys[j])
		return a < b
	})

	out := make([]Draft, 0, len(keys))
	for _, key := range keys {
		draft, err := r.read(ctx, key)
		if err != nil {
			if errors.Is(err, ErrCorrupt) {
				r.logger.Warn("skipping corrupt draft", slog.String("key", key))
				continue
			}
			if errors.Is(err, shared.ErrNotFound) {
				// Deleted between scan and read.
				continue
			}
			return nil, err
		}
		out = append(out, *draft)
	}
	return out, nil
}

// LoadOne fetches one draft after verifying ownership.
func (r *RedisRepository) LoadOne(ctx context.Context, userID int64, key string) (*Draft, error) {
	if !Owns(userID, key) {
		return nil, shared.ErrNotOwner
	}
	return r.read(ctx, key)
}

// DeleteOne removes one draft after verifying ownership.
func (r *RedisRepository) DeleteOne(ctx context.Context, userID int64, key string) error {
	if !Owns(userID, key) {
		return shared.ErrNotOwner
	}
	removed, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("drafts: delete %s: %w", key, err)
	}
	if removed == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearAll removes every draft in the user's namespace.
func (r *RedisRepository) ClearAll(ctx context.Context, userID int64) (int, error) {
	keys, err := r.scanKeys(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("drafts: scan keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	removed, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("drafts: clear: %w", err)
	}
	return int(removed), nil
}

func (r *RedisRepository) read(ctx context.Context, key string) (*Draft, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("drafts: read %s: %w", key, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, key)
	}
	return &Draft{Key: key, Snapshot: snap}, nil
}

func (r *RedisRepository) scanKeys(ctx context.Context, userID int64) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, KeyPrefix(userID)+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
