package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	redisclient "github.com/kulhudhufushidive/site-server/internal/redis"
)

// RedisStore keeps values in redis under a shared namespace. Values never
// expire; content lives until it is overwritten or deleted.
type RedisStore struct {
	client *redisclient.Client
}

func NewRedisStore(client *redisclient.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(key string) ([]byte, bool, error) {
	data, err := s.client.Get(context.Background(), redisclient.ContentKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Set(key string, value []byte) error {
	if len(value) > MaxValueBytes {
		return ErrQuotaExceeded
	}
	return s.client.Set(context.Background(), redisclient.ContentKey(key), value, 0).Err()
}

func (s *RedisStore) Delete(key string) error {
	return s.client.Del(context.Background(), redisclient.ContentKey(key)).Err()
}
