package contracts

import (
	"context"
	"medportal-service/internal/app/models"
)

// SessionStore persists session fields per browser session namespace.
type SessionStore interface {
	Load(ctx context.Context, namespace string) (map[string]string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace string, keys ...string) error
	Clear(ctx context.Context, namespace string) error
}

type SessionContext interface {
	// Namespace is the browser session id the context is bound to.
	Namespace() string
	// Initialize loads the persisted Session; a store failure is returned so the load can be retried.
	Initialize(ctx context.Context) error
	Snapshot() models.Session
	SetField(ctx context.Context, key, value string) error
	Apply(ctx context.Context, session models.Session)
	Logout(ctx context.Context)
	Subscribe() (<-chan models.Session, func())
	SetAccessToken(ctx context.Context, token string)
	SetRefreshToken(ctx context.Context, token string)
	SetUserType(ctx context.Context, userType models.UserType)
	SetUserID(ctx context.Context, userID string)
	SetUserFullName(ctx context.Context, fullName string)
	SetProfilePhotoURL(ctx context.Context, url string)
	SetDoctorID(ctx context.Context, doctorID string)
	SetPatientID(ctx context.Context, patientID string)
	SetReceptionistID(ctx context.Context, receptionistID string)
	SetAssignedDoctorID(ctx context.Context, doctorID string)
	// LoadPersisted reads one key straight from the persisted store.
	LoadPersisted(ctx context.Context, key string) (string, bool)
	// Hydrate updates the in-memory value only, for values read back from the store.
	Hydrate(key, value string)
}

type SessionRegistry interface {
	Context(ctx context.Context, browserSessionID string) SessionContext
	Drop(browserSessionID string)
}

type SessionEventPublisher interface {
	Publish(ctx context.Context, event models.SessionEvent) error
}
