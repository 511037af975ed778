package models

import "time"

type SessionEventType string

const (
	SessionEventLoggedIn       SessionEventType = "session.logged_in"
	SessionEventLoggedOut      SessionEventType = "session.logged_out"
	SessionEventTokenRefreshed SessionEventType = "session.token_refreshed"
	SessionEventRefreshFailed  SessionEventType = "session.refresh_failed"
)

type SessionEvent struct {
	Type             SessionEventType `json:"type"`
	BrowserSessionID string           `json:"browser_session_id"`
	UserType         UserType         `json:"user_type,omitempty"`
	UserID           string           `json:"user_id,omitempty"`
	OccurredAt       time.Time        `json:"occurred_at"`
}
