package settings

import (
	"context"
	stderrors "errors"

	"github.com/redis/go-redis/v9"

	"whisper-sync/internal/app/errors"
)

const redisKeyPrefix = "wsync:settings:"

// RedisStore keeps settings as plain redis strings without expiry.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "connect to redis at %s", addr)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", errors.ErrSettingNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "redis get")
	}
	return v, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return errors.Wrap(r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(), "redis set")
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return errors.Wrap(r.client.Del(ctx, redisKeyPrefix+key).Err(), "redis del")
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
