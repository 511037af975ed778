package ratelimiter

import (
	"context"
	"fmt"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FixedWindowLimiter counts attempts per resource in redis using fixed windows.
type FixedWindowLimiter struct {
	redis  contracts.RedisRepository
	log    *zap.Logger
	window time.Duration
	quota  int
	now    func() time.Time
}

func NewFixedWindowLimiter(redis contracts.RedisRepository, log *zap.Logger, window time.Duration, quota int) *FixedWindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{
		redis:  redis,
		log:    log,
		window: window,
		quota:  quota,
		now:    time.Now,
	}
}

// Allow records one attempt for resource within group. When the quota is exceeded
// it returns false together with the time left until the next window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, group, resource string) (bool, time.Duration, error) {
	if l.quota <= 0 {
		return true, 0, nil
	}

	resource = strings.TrimSpace(resource)
	group = strings.ToUpper(strings.TrimSpace(group))
	if resource == "" || group == "" {
		return false, l.window, nil
	}

	windowSeconds := int64(l.window / time.Second)
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	now := l.now().UTC()
	windowID := now.Unix() / windowSeconds
	key := fmt.Sprintf("portal:limit:%s:%s:%d", group, utils.HashIdentifier(resource), windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, l.window+time.Second)
	if err != nil {
		l.log.Error("FixedWindowLimiter.Allow increment failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return false, 0, err
	}

	if count > l.quota {
		nextWindowStart := (windowID + 1) * windowSeconds
		retryAfter := time.Duration(nextWindowStart-now.Unix()) * time.Second
		return false, retryAfter, nil
	}

	return true, 0, nil
}
