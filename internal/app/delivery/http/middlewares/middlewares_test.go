package middlewares

import (
	"context"
	"io"
	"medportal-service/internal/app/config"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/models"
	"medportal-service/internal/app/services/core/guards"
	"medportal-service/internal/app/services/core/session"
	"medportal-service/internal/app/services/shared/sessionstore"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestMiddlewares(t *testing.T) (*Middlewares, *session.Registry) {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{RequestBodyLimitInMegabyte: 1},
		JWT: config.AppJWT{Secret: testSecret, ExpTimeInHour: 1},
	}
	registry := session.NewRegistry(sessionstore.NewMemorySessionStore(time.Hour), logger, time.Hour)
	return NewMiddlewares(logger, internalConfig, registry, guards.DefaultRouteTable()), registry
}

func withSessionContext(r *http.Request, sessionContext contracts.SessionContext) *http.Request {
	ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_CONTEXT_KEY, sessionContext)
	return r.WithContext(ctx)
}

func TestBrowserSession(t *testing.T) {
	m, _ := newTestMiddlewares(t)

	var seen contracts.SessionContext
	handler := m.BrowserSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionContext, ok := SessionContextFrom(r.Context())
		require.True(t, ok)
		assert.Equal(t, sessionContext.Namespace(), utils.GetBrowserSessionID(r.Context()))
		seen = sessionContext
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, constvars.BrowserSessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.NotNil(t, seen)
	first := seen

	t.Run("Cookie Is Reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Empty(t, rr.Result().Cookies())
		assert.Equal(t, first.Namespace(), seen.Namespace())
		assert.Same(t, first, seen)
	})

	t.Run("Tampered Cookie Starts A New Session", func(t *testing.T) {
		forged, err := utils.GenerateBrowserSessionJWT(first.Namespace(), "another-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: constvars.BrowserSessionCookieName, Value: forged})
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		require.Len(t, rr.Result().Cookies(), 1)
		assert.NotEqual(t, first.Namespace(), seen.Namespace())
	})
}

func TestGuard(t *testing.T) {
	m, registry := newTestMiddlewares(t)
	ctx := context.Background()

	var reached bool
	var route guards.Route
	var matched bool
	handler := m.Guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		route, matched = RouteFrom(r.Context())
	}))
	serve := func(sessionContext contracts.SessionContext, path string) *httptest.ResponseRecorder {
		reached, matched = false, false
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, withSessionContext(httptest.NewRequest(http.MethodGet, path, nil), sessionContext))
		return rr
	}

	loggedOut := registry.Context(ctx, "browser-logged-out")
	doctor := registry.Context(ctx, "browser-doctor")
	doctor.Apply(ctx, models.Session{
		UserType:    models.UserTypeDoctor,
		UserID:      "doc-1",
		DoctorID:    "doc-1",
		AccessToken: "access",
	})
	receptionist := registry.Context(ctx, "browser-receptionist")
	receptionist.Apply(ctx, models.Session{
		UserType:       models.UserTypeReceptionist,
		UserID:         "rec-1",
		ReceptionistID: "rec-1",
		AccessToken:    "access",
	})

	t.Run("Logged Out Is Sent To Login", func(t *testing.T) {
		rr := serve(loggedOut, "/feed")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, constvars.PathLogin, rr.Header().Get(constvars.HeaderLocation))
		assert.False(t, reached)
	})

	t.Run("Public Page Needs No Session", func(t *testing.T) {
		serve(loggedOut, "/posts/42")

		assert.True(t, reached)
		assert.True(t, matched)
		assert.Equal(t, "post", route.Page)
	})

	t.Run("Doctor Page Allowed For Doctor", func(t *testing.T) {
		serve(doctor, "/edit-post/7")

		assert.True(t, reached)
		assert.Equal(t, "edit-post", route.Page)
	})

	t.Run("Unassigned Receptionist Is Sent To Job Offers", func(t *testing.T) {
		rr := serve(receptionist, "/patient-search")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, constvars.PathReceptionistJobOffers, rr.Header().Get(constvars.HeaderLocation))
	})

	t.Run("Receptionist Is Sent Home From Doctor Pages", func(t *testing.T) {
		rr := serve(receptionist, "/doctor-dashboard")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, constvars.PathReceptionistJobOffers, rr.Header().Get(constvars.HeaderLocation))
	})

	t.Run("Unknown Path Passes Unmatched When Logged In", func(t *testing.T) {
		serve(doctor, "/does-not-exist")

		assert.True(t, reached)
		assert.False(t, matched)
	})
}

func TestRateLimiter(t *testing.T) {
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(60, time.Minute, 2, 5*time.Minute, zap.NewNop())
	limiter.now = func() time.Time { return clock }

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	hit := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1").Code)

	blocked := hit("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get(constvars.HeaderRetryAfter))

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2").Code, "other clients are unaffected")

	clock = clock.Add(time.Minute)
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1").Code, "block outlasts the refill")

	clock = clock.Add(5 * time.Minute)
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1").Code)

	clock = clock.Add(time.Hour)
	limiter.Cleanup()
	limiter.mu.Lock()
	assert.Empty(t, limiter.limiters)
	assert.Empty(t, limiter.blocked)
	limiter.mu.Unlock()
}

func TestBodyLimit(t *testing.T) {
	m, _ := newTestMiddlewares(t)

	var readErr error
	handler := m.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.NoError(t, readErr)

	oversized := strings.NewReader(strings.Repeat("x", 1<<20+1))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", oversized))
	assert.Error(t, readErr)
}

func TestErrorHandler(t *testing.T) {
	m, _ := newTestMiddlewares(t)

	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
