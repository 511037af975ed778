package session

import (
	"context"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/constvars"
	"sync"
	"time"

	"go.uber.org/zap"
)

type registryEntry struct {
	context     *Context
	initMu      sync.Mutex
	initialized bool
	lastSeen    time.Time
}

// Registry maps browser session ids to their Context, creating and initializing
// a Context on first use. A Context whose store load failed is initialized
// again on the next request.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*registryEntry
	store    contracts.SessionStore
	log      *zap.Logger
	idleTTL  time.Duration
	now      func() time.Time
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewRegistry(store contracts.SessionStore, logger *zap.Logger, idleTTL time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		store:   store,
		log:     logger,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

func (r *Registry) Context(ctx context.Context, browserSessionID string) contracts.SessionContext {
	r.mu.Lock()
	entry, ok := r.entries[browserSessionID]
	if !ok {
		entry = &registryEntry{context: NewContext(browserSessionID, r.store, r.log)}
		r.entries[browserSessionID] = entry
	}
	entry.lastSeen = r.now()
	r.mu.Unlock()

	entry.initMu.Lock()
	if !entry.initialized {
		entry.initialized = entry.context.Initialize(ctx) == nil
	}
	entry.initMu.Unlock()
	return entry.context
}

func (r *Registry) Drop(browserSessionID string) {
	r.mu.Lock()
	entry, ok := r.entries[browserSessionID]
	delete(r.entries, browserSessionID)
	r.mu.Unlock()

	if ok {
		entry.context.close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// EvictIdle drops contexts not used within the idle TTL. Their state stays in the
// persisted store and is re-initialized on the next request.
func (r *Registry) EvictIdle() int {
	if r.idleTTL <= 0 {
		return 0
	}

	cutoff := r.now().Add(-r.idleTTL)
	var evicted []*registryEntry

	r.mu.Lock()
	for id, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			evicted = append(evicted, entry)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, entry := range evicted {
		entry.context.close()
	}
	return len(evicted)
}

// StartJanitor evicts idle contexts every interval until the returned stop func is called.
func (r *Registry) StartJanitor(interval time.Duration) func() {
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if evicted := r.EvictIdle(); evicted > 0 {
					r.log.Debug("session.Registry evicted idle contexts",
						zap.Int("evicted", evicted),
						zap.Duration(constvars.LoggingDurationKey, r.idleTTL),
					)
				}
			case <-r.stop:
				return
			}
		}
	}()

	return func() {
		r.stopOnce.Do(func() {
			close(r.stop)
			<-r.done
		})
	}
}
