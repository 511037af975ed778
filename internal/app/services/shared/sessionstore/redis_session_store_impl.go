package sessionstore

import (
	"context"
	"fmt"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/constvars"
	"time"
)

type redisSessionStore struct {
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
}

// NewRedisSessionStore keeps one hash per browser session.
func NewRedisSessionStore(redisRepository contracts.RedisRepository, ttl time.Duration) contracts.SessionStore {
	return &redisSessionStore{
		RedisRepository: redisRepository,
		TTL:             ttl,
	}
}

func (s *redisSessionStore) Load(ctx context.Context, namespace string) (map[string]string, error) {
	values, err := s.RedisRepository.HashGetAll(ctx, redisKey(namespace))
	if err != nil {
		return nil, err
	}
	return filterKnown(values), nil
}

func (s *redisSessionStore) Set(ctx context.Context, namespace, key, value string) error {
	if err := validateKeys(key); err != nil {
		return err
	}
	hashKey := redisKey(namespace)
	err := s.RedisRepository.HashSet(ctx, hashKey, map[string]string{key: value})
	if err != nil {
		return err
	}
	if s.TTL > 0 {
		return s.RedisRepository.Expire(ctx, hashKey, s.TTL)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, namespace string, keys ...string) error {
	if err := validateKeys(keys...); err != nil {
		return err
	}
	return s.RedisRepository.HashDelete(ctx, redisKey(namespace), keys...)
}

func (s *redisSessionStore) Clear(ctx context.Context, namespace string) error {
	return s.RedisRepository.Delete(ctx, redisKey(namespace))
}

func redisKey(namespace string) string {
	return fmt.Sprintf(constvars.RedisSessionKeyFormat, namespace)
}
