package middlewares

import (
	"context"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// BrowserSession binds the request to the Session Context of its browser
// session. Requests without a valid session cookie get a fresh one.
func (m *Middlewares) BrowserSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		browserSessionID := m.browserSessionID(r)
		if browserSessionID == "" {
			var err error
			browserSessionID, err = m.issueBrowserSession(w)
			if err != nil {
				m.Log.Error("Middlewares.BrowserSession failed to issue session cookie",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
					zap.Error(err),
				)
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenGenerate(err))
				return
			}
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_BROWSER_SESSION_ID_KEY, browserSessionID)
		sessionContext := m.SessionRegistry.Context(ctx, browserSessionID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_CONTEXT_KEY, sessionContext)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middlewares) browserSessionID(r *http.Request) string {
	cookie, err := r.Cookie(constvars.BrowserSessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	browserSessionID, err := utils.ParseBrowserSessionJWT(cookie.Value, m.InternalConfig.JWT.Secret)
	if err != nil {
		m.Log.Debug("Middlewares.BrowserSession discarded invalid session cookie",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		return ""
	}
	return browserSessionID
}

func (m *Middlewares) issueBrowserSession(w http.ResponseWriter) (string, error) {
	browserSessionID := utils.GenerateBrowserSessionID()
	token, err := utils.GenerateBrowserSessionJWT(browserSessionID, m.InternalConfig.JWT.Secret, m.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constvars.BrowserSessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   m.InternalConfig.JWT.ExpTimeInHour * 3600,
		HttpOnly: true,
		Secure:   m.InternalConfig.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return browserSessionID, nil
}

// SessionContextFrom returns the Session Context bound by BrowserSession.
func SessionContextFrom(ctx context.Context) (contracts.SessionContext, bool) {
	sessionContext, ok := ctx.Value(constvars.CONTEXT_SESSION_CONTEXT_KEY).(contracts.SessionContext)
	return sessionContext, ok
}
