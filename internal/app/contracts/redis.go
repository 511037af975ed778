package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	HashSet(ctx context.Context, key string, values map[string]string) error
	HashGetAll(ctx context.Context, key string) (map[string]string, error)
	HashDelete(ctx context.Context, key string, fields ...string) error
	Expire(ctx context.Context, key string, exp time.Duration) error
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error)
}
