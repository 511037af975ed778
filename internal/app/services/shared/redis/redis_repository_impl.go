package redis

import (
	"context"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/exceptions"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}

func (r *redisRepository) HashSet(ctx context.Context, key string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(values)*2)
	for field, value := range values {
		args = append(args, field, value)
	}
	err := r.client.HSet(ctx, key, args...).Err()
	if err != nil {
		return exceptions.ErrRedisHashSet(err)
	}
	return nil
}

func (r *redisRepository) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	values, err := r.client.HGetAll(ctx, key).Result()
	if err == redis.Nil {
		return map[string]string{}, nil
	} else if err != nil {
		return nil, exceptions.ErrRedisHashGetAll(err)
	}
	return values, nil
}

func (r *redisRepository) HashDelete(ctx context.Context, key string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.client.HDel(ctx, key, fields...).Err()
	if err != nil {
		return exceptions.ErrRedisHashDelete(err)
	}
	return nil
}

func (r *redisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	err := r.client.Expire(ctx, key, exp).Err()
	if err != nil {
		return exceptions.ErrRedisExpire(err)
	}
	return nil
}

// IncrementWithTTL increments key and sets its TTL when the key is new.
func (r *redisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, exceptions.ErrRedisSet(err)
	}
	return int(incr.Val()), nil
}
