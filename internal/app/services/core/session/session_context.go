package session

import (
	"context"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/models"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

// Context holds the Session of one browser session and mirrors every write
// into the persisted store. The in-memory copy is authoritative: store
// failures are logged and never returned.
type Context struct {
	// persistMu serializes a mutation's memory update together with its store
	// writes, so a Logout can never be followed by a stale write of the session
	// it cleared. Lock order is persistMu then mu.
	persistMu   sync.Mutex
	mu          sync.RWMutex
	namespace   string
	session     models.Session
	store       contracts.SessionStore
	log         *zap.Logger
	subscribers map[int]chan models.Session
	nextSubID   int
}

func NewContext(namespace string, store contracts.SessionStore, logger *zap.Logger) *Context {
	return &Context{
		namespace:   namespace,
		store:       store,
		log:         logger,
		subscribers: make(map[int]chan models.Session),
	}
}

// Initialize rebuilds the Session from the persisted store. When the store
// cannot be read the in-memory Session is left as it was and the error is
// returned so the caller can retry.
func (c *Context) Initialize(ctx context.Context) error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	values, err := c.store.Load(ctx, c.namespace)
	if err != nil {
		c.log.Error("session.Context.Initialize failed to load persisted session",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingBrowserSessionIDKey, c.namespace),
			zap.Error(err),
		)
		return err
	}

	session := models.Session{}
	for key, value := range values {
		setSessionField(&session, key, value)
	}
	session.IsLoggedIn = isLoggedIn(session)

	c.mu.Lock()
	c.session = session
	c.publishLocked()
	c.mu.Unlock()
	return nil
}

func (c *Context) Snapshot() models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Context) Namespace() string {
	return c.namespace
}

// SetField updates one enumerated key. An empty value removes the key from the store.
func (c *Context) SetField(ctx context.Context, key, value string) error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	if !setSessionField(&c.session, key, value) {
		c.mu.Unlock()
		return exceptions.ErrUnknownSessionKey(nil, key)
	}
	c.session.IsLoggedIn = isLoggedIn(c.session)
	c.publishLocked()
	c.mu.Unlock()

	c.persist(ctx, key, value)
	return nil
}

func (c *Context) SetAccessToken(ctx context.Context, token string) {
	c.SetField(ctx, constvars.SessionKeyToken, token)
}

func (c *Context) SetRefreshToken(ctx context.Context, token string) {
	c.SetField(ctx, constvars.SessionKeyRefreshToken, token)
}

func (c *Context) SetUserType(ctx context.Context, userType models.UserType) {
	c.SetField(ctx, constvars.SessionKeyUserType, userType.String())
}

func (c *Context) SetUserID(ctx context.Context, userID string) {
	c.SetField(ctx, constvars.SessionKeyUserID, userID)
}

func (c *Context) SetUserFullName(ctx context.Context, fullName string) {
	c.SetField(ctx, constvars.SessionKeyUserFullName, fullName)
}

func (c *Context) SetProfilePhotoURL(ctx context.Context, url string) {
	c.SetField(ctx, constvars.SessionKeyUserProfilePictureURL, url)
}

func (c *Context) SetDoctorID(ctx context.Context, doctorID string) {
	c.SetField(ctx, constvars.SessionKeyDoctorID, doctorID)
}

func (c *Context) SetPatientID(ctx context.Context, patientID string) {
	c.SetField(ctx, constvars.SessionKeyPatientID, patientID)
}

func (c *Context) SetReceptionistID(ctx context.Context, receptionistID string) {
	c.SetField(ctx, constvars.SessionKeyReceptionistID, receptionistID)
}

func (c *Context) SetAssignedDoctorID(ctx context.Context, doctorID string) {
	c.SetField(ctx, constvars.SessionKeyAssignedDoctorID, doctorID)
}

// Apply replaces the whole Session, memory first and then the store, before returning.
func (c *Context) Apply(ctx context.Context, session models.Session) {
	values := sessionValues(session)

	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	c.session = models.Session{}
	for key, value := range values {
		setSessionField(&c.session, key, value)
	}
	c.session.IsLoggedIn = isLoggedIn(c.session)
	c.publishLocked()
	c.mu.Unlock()

	for _, key := range constvars.SessionKeys {
		c.persist(ctx, key, values[key])
	}
}

// Logout clears every field in memory and drops the whole namespace from the store.
func (c *Context) Logout(ctx context.Context) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	c.session = models.Session{}
	c.publishLocked()
	c.mu.Unlock()

	err := c.store.Clear(ctx, c.namespace)
	if err != nil {
		c.log.Error("session.Context.Logout failed to clear persisted session",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingBrowserSessionIDKey, c.namespace),
			zap.Error(err),
		)
	}
}

func (c *Context) LoadPersisted(ctx context.Context, key string) (string, bool) {
	values, err := c.store.Load(ctx, c.namespace)
	if err != nil {
		c.log.Error("session.Context.LoadPersisted failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingBrowserSessionIDKey, c.namespace),
			zap.String(constvars.LoggingSessionKeyKey, key),
			zap.Error(err),
		)
		return "", false
	}
	value, ok := values[key]
	return value, ok && value != ""
}

func (c *Context) Hydrate(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if setSessionField(&c.session, key, value) {
		c.session.IsLoggedIn = isLoggedIn(c.session)
		c.publishLocked()
	}
}

// Subscribe delivers the latest snapshot after every mutation. Slow subscribers
// only ever see the most recent one.
func (c *Context) Subscribe() (<-chan models.Session, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan models.Session, 1)
	c.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subscribers[id]; ok {
				delete(c.subscribers, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

func (c *Context) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, sub := range c.subscribers {
		delete(c.subscribers, id)
		close(sub)
	}
}

func (c *Context) publishLocked() {
	snapshot := c.session
	for _, sub := range c.subscribers {
		select {
		case sub <- snapshot:
		default:
			select {
			case <-sub:
			default:
			}
			sub <- snapshot
		}
	}
}

func (c *Context) persist(ctx context.Context, key, value string) {
	var err error
	if value == "" {
		err = c.store.Delete(ctx, c.namespace, key)
	} else {
		err = c.store.Set(ctx, c.namespace, key, value)
	}
	if err != nil {
		c.log.Error("session.Context failed to persist session field",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingBrowserSessionIDKey, c.namespace),
			zap.String(constvars.LoggingSessionKeyKey, key),
			zap.Error(err),
		)
	}
}

func isLoggedIn(session models.Session) bool {
	return session.UserID != "" && session.AccessToken != "" && session.UserType.IsValid()
}
