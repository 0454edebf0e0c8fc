package profile

import (
	"context"
	"encoding/json"
	"time"

	"scooter/internal/domain/entity"
	"scooter/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps snapshots as JSON strings that expire after ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ service.ProfileStore = (*RedisStore)(nil)

// NewRedisStore wraps a Redis client. A zero ttl keeps snapshots until sign-out.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, clientID string, snapshot entity.ProfileSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "encode profile snapshot")
	}

	return errors.Wrap(s.client.Set(ctx, snapshotKey(clientID), data, s.ttl).Err(), "write profile snapshot")
}

func (s *RedisStore) Load(ctx context.Context, clientID string) (*entity.ProfileSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(clientID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.WithStack(service.ErrProfileNotFound)
		}

		return nil, errors.Wrap(err, "read profile snapshot")
	}

	var snapshot entity.ProfileSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(err, "decode profile snapshot")
	}

	return &snapshot, nil
}

func (s *RedisStore) Delete(ctx context.Context, clientID string) error {
	return errors.Wrap(s.client.Del(ctx, snapshotKey(clientID)).Err(), "delete profile snapshot")
}

func (s *RedisStore) Close() error {
	return errors.Wrap(s.client.Close(), "close redis client")
}
