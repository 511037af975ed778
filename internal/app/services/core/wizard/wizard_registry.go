package wizard

import (
	"medportal-service/internal/app/models"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

type registryEntry struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Registry keeps one Wizard per browser session and role.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*registryEntry
	idleTTL  time.Duration
	onEvict  func(*Wizard)
	log      *zap.Logger
	now      func() time.Time
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewRegistry creates a registry. onEvict, when set, runs for every wizard
// removed by Drop or by idle eviction.
func NewRegistry(idleTTL time.Duration, onEvict func(*Wizard), logger *zap.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		idleTTL: idleTTL,
		onEvict: onEvict,
		log:     logger,
		now:     time.Now,
	}
}

func registryKey(browserSessionID string, userType models.UserType) string {
	return browserSessionID + ":" + userType.String()
}

// Get returns the wizard for the browser session and role, starting a new one at step 0.
func (r *Registry) Get(browserSessionID string, userType models.UserType) (*Wizard, error) {
	definition, ok := DefinitionFor(userType)
	if !ok {
		return nil, exceptions.ErrWizardUnknownRole(nil, userType.String())
	}

	key := registryKey(browserSessionID, userType)
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[key]
	if !ok {
		entry = &registryEntry{wizard: New(definition)}
		r.entries[key] = entry
	}
	entry.lastSeen = r.now()
	return entry.wizard, nil
}

func (r *Registry) Drop(browserSessionID string, userType models.UserType) {
	key := registryKey(browserSessionID, userType)
	r.mu.Lock()
	entry, ok := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()

	if ok && r.onEvict != nil {
		r.onEvict(entry.wizard)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// EvictIdle removes wizards untouched for the idle TTL. Wizards with a
// submission in flight are kept.
func (r *Registry) EvictIdle() int {
	if r.idleTTL <= 0 {
		return 0
	}

	cutoff := r.now().Add(-r.idleTTL)
	var evicted []*Wizard

	r.mu.Lock()
	for key, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) && !entry.wizard.State().Submitting {
			evicted = append(evicted, entry.wizard)
			delete(r.entries, key)
		}
	}
	r.mu.Unlock()

	if r.onEvict != nil {
		for _, wizard := range evicted {
			r.onEvict(wizard)
		}
	}
	return len(evicted)
}

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
					r.log.Debug("wizard.Registry evicted idle wizards",
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
