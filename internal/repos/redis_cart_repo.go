package repos

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		Protocol: 2,
	})
}

// RedisCartRepo stores cart blobs as plain string keys without expiry.
type RedisCartRepo struct{ rdb *redis.Client }

func NewRedisCartRepo(rdb *redis.Client) *RedisCartRepo { return &RedisCartRepo{rdb: rdb} }

func (r *RedisCartRepo) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (r *RedisCartRepo) Save(ctx context.Context, key string, blob []byte) error {
	return r.rdb.Set(ctx, key, blob, 0).Err()
}

func (r *RedisCartRepo) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}
