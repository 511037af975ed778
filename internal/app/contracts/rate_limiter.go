package contracts

import (
	"context"
	"time"
)

type RateLimiter interface {
	Allow(ctx context.Context, group, resource string) (bool, time.Duration, error)
}
