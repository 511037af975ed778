package middlewares

import (
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per IP token bucket that blocks an IP for blockTime once it
// runs dry. It guards the login endpoint against credential stuffing.
type RateLimiter struct {
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	blockTime time.Duration
	log       *zap.Logger
	now       func() time.Time
}

// NewRateLimiter allows requests per interval with the given burst.
func NewRateLimiter(requests int, per time.Duration, burst int, blockTime time.Duration, logger *zap.Logger) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if burst <= 0 {
		burst = requests
	}
	return &RateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		limit:     rate.Every(per / time.Duration(requests)),
		burst:     burst,
		blockTime: blockTime,
		log:       logger,
		now:       time.Now,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip := utils.GetClientIP(req)
		now := r.now()

		r.mu.Lock()
		if blockedUntil, found := r.blocked[ip]; found {
			if now.Before(blockedUntil) {
				r.mu.Unlock()
				r.reject(w, req, ip, blockedUntil.Sub(now))
				return
			}
			delete(r.blocked, ip)
			delete(r.limiters, ip)
		}

		limiter, exists := r.limiters[ip]
		if !exists {
			limiter = rate.NewLimiter(r.limit, r.burst)
			r.limiters[ip] = limiter
		}

		if !limiter.AllowN(now, 1) {
			r.blocked[ip] = now.Add(r.blockTime)
			r.mu.Unlock()
			r.reject(w, req, ip, r.blockTime)
			return
		}
		r.mu.Unlock()

		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) reject(w http.ResponseWriter, req *http.Request, ip string, retryAfter time.Duration) {
	r.log.Warn("RateLimiter.Limit blocked request",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(req.Context())),
		zap.String(constvars.LoggingRemoteAddrKey, ip),
		zap.Duration("retry_after", retryAfter),
	)
	w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(int(retryAfter.Seconds())+1))
	utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(nil))
}

// Cleanup drops expired blocks and IPs whose bucket has refilled.
func (r *RateLimiter) Cleanup() {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	for ip, blockedUntil := range r.blocked {
		if now.After(blockedUntil) {
			delete(r.blocked, ip)
		}
	}
	for ip, limiter := range r.limiters {
		if _, blocked := r.blocked[ip]; !blocked && limiter.TokensAt(now) >= float64(r.burst) {
			delete(r.limiters, ip)
		}
	}
}

func (r *RateLimiter) StartJanitor(interval time.Duration) func() {
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Cleanup()
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}
