package routers

import (
	"bufio"
	"bytes"
	"context"
	"medportal-service/internal/app/config"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/delivery/http/controllers"
	"medportal-service/internal/app/delivery/http/middlewares"
	"medportal-service/internal/app/models"
	"medportal-service/internal/app/services/core/guards"
	"medportal-service/internal/app/services/core/session"
	"medportal-service/internal/app/services/shared/sessionstore"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, sessionContext contracts.SessionContext, request *requests.Login) (*responses.Login, error) {
	args := m.Called(ctx, sessionContext, request)
	response, _ := args.Get(0).(*responses.Login)
	return response, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, sessionContext contracts.SessionContext) error {
	return m.Called(ctx, sessionContext).Error(0)
}

func (m *MockAuthUsecase) Refresh(ctx context.Context, sessionContext contracts.SessionContext) (*responses.Session, error) {
	args := m.Called(ctx, sessionContext)
	response, _ := args.Get(0).(*responses.Session)
	return response, args.Error(1)
}

func (m *MockAuthUsecase) ForgotPassword(ctx context.Context, request *requests.ForgotPassword) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockAuthUsecase) ResetPassword(ctx context.Context, request *requests.ResetPassword) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockAuthUsecase) VerifyAccount(ctx context.Context, request *requests.VerifyAccount) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockAuthUsecase) SetAssignment(ctx context.Context, sessionContext contracts.SessionContext, request *requests.SessionAssignment) (*responses.Login, error) {
	args := m.Called(ctx, sessionContext, request)
	response, _ := args.Get(0).(*responses.Login)
	return response, args.Error(1)
}

// The router tests never reach these usecases.
type unusedRegistrationUsecase struct{ contracts.RegistrationUsecase }
type unusedFeedUsecase struct{ contracts.FeedUsecase }

func newTestRouter(t *testing.T, authUsecase contracts.AuthUsecase) *chi.Mux {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:               "/api",
			Version:                      "v1",
			CorsAllowedOrigins:           []string{"http://localhost:3000"},
			MaxRequests:                  1000,
			MaxTimeRequestsPerSeconds:    60,
			RequestBodyLimitInMegabyte:   1,
			LoginRateLimitPerMinute:      60,
			LoginRateLimitBurst:          2,
			LoginRateLimitBlockInMinutes: 1,
		},
		JWT:   config.AppJWT{Secret: "test-secret", ExpTimeInHour: 1},
		Minio: config.AppMinio{ProfilePictureMaxUploadSizeInMB: 1},
	}

	registry := session.NewRegistry(sessionstore.NewMemorySessionStore(time.Hour), logger, time.Hour)
	middlewareInstance := middlewares.NewMiddlewares(logger, internalConfig, registry, guards.DefaultRouteTable())
	loginLimiter := middlewares.NewRateLimiter(internalConfig.App.LoginRateLimitPerMinute, time.Minute, internalConfig.App.LoginRateLimitBurst, time.Minute, logger)

	router := chi.NewRouter()
	SetupRoutes(router, internalConfig, middlewareInstance, loginLimiter, Controllers{
		Auth:         controllers.NewAuthController(logger, authUsecase, 1),
		Registration: controllers.NewRegistrationController(logger, unusedRegistrationUsecase{}, internalConfig),
		Feed:         controllers.NewFeedController(logger, unusedFeedUsecase{}, 1),
		Page:         controllers.NewPageController(logger),
	})
	return router
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == constvars.BrowserSessionCookieName {
			return cookie
		}
	}
	t.Fatalf("response carries no %s cookie", constvars.BrowserSessionCookieName)
	return nil
}

func TestRouter_Navigation(t *testing.T) {
	router := newTestRouter(t, new(MockAuthUsecase))

	t.Run("Protected Page Redirects To Login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/feed", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
		assert.NotNil(t, sessionCookie(t, rr))
	})

	t.Run("Unknown Page Is Guarded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("Public Page Is Described", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Data responses.PageDescriptor `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "login", body.Data.Page)
		assert.Equal(t, "/login", body.Data.Path)
		assert.False(t, body.Data.Session.IsLoggedIn)
	})
}

func TestRouter_LoginBindsBrowserSession(t *testing.T) {
	authUsecase := new(MockAuthUsecase)
	router := newTestRouter(t, authUsecase)

	doctor := models.Session{
		IsLoggedIn:   true,
		UserType:     models.UserTypeDoctor,
		UserID:       "doc-1",
		DoctorID:     "doc-1",
		AccessToken:  "access",
		RefreshToken: "refresh",
		UserFullName: "Ada Lovelace",
	}
	authUsecase.On("Login", mock.Anything, mock.Anything, mock.AnythingOfType("*requests.Login")).
		Run(func(args mock.Arguments) {
			args.Get(1).(contracts.SessionContext).Apply(args.Get(0).(context.Context), doctor)
		}).
		Return(&responses.Login{RedirectTo: "/doctor-dashboard"}, nil).
		Once()

	body, _ := json.Marshal(requests.Login{Email: "ada@example.com", Password: "Secret123!", UserType: "doctor"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(t, rr)

	t.Run("Same Cookie Reaches Doctor Pages", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/doctor-dashboard", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Data responses.PageDescriptor `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "doctor-dashboard", body.Data.Page)
		assert.True(t, body.Data.Session.IsLoggedIn)
		assert.Equal(t, "doc-1", body.Data.Session.UserID)
	})

	t.Run("Other Browser Stays Logged Out", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/doctor-dashboard", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
	})

	t.Run("Doctor Is Sent Home From Receptionist Pages", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/receptionist-dashboard", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/doctor-dashboard", rr.Header().Get("Location"))
	})

	authUsecase.AssertExpectations(t)
}

func TestRouter_ErrorHandling(t *testing.T) {
	authUsecase := new(MockAuthUsecase)
	router := newTestRouter(t, authUsecase)

	t.Run("Invalid JSON Body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("invalid json"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Missing Email Field", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"password": "x", "user_type": "doctor"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "10.0.0.9")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	authUsecase.AssertNotCalled(t, "Login")
}

func TestRouter_LoginRateLimit(t *testing.T) {
	router := newTestRouter(t, new(MockAuthUsecase))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{"))
		req.Header.Set("X-Forwarded-For", "10.0.0.1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestRouter_SessionStream(t *testing.T) {
	authUsecase := new(MockAuthUsecase)
	server := httptest.NewServer(newTestRouter(t, authUsecase))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/session/stream", nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, constvars.MIMETextEventStream, resp.Header.Get(constvars.HeaderContentType))

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == constvars.BrowserSessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	events := bufio.NewReader(resp.Body)
	nextSession := func() responses.Session {
		t.Helper()
		for {
			line, err := events.ReadString('\n')
			require.NoError(t, err)
			if data, ok := strings.CutPrefix(strings.TrimSpace(line), "data: "); ok {
				var session responses.Session
				require.NoError(t, json.Unmarshal([]byte(data), &session))
				return session
			}
		}
	}

	assert.False(t, nextSession().IsLoggedIn)

	doctor := models.Session{
		IsLoggedIn:  true,
		UserType:    models.UserTypeDoctor,
		UserID:      "doc-1",
		DoctorID:    "doc-1",
		AccessToken: "access",
	}
	authUsecase.On("Login", mock.Anything, mock.Anything, mock.AnythingOfType("*requests.Login")).
		Run(func(args mock.Arguments) {
			args.Get(1).(contracts.SessionContext).Apply(args.Get(0).(context.Context), doctor)
		}).
		Return(&responses.Login{RedirectTo: "/doctor-dashboard"}, nil).
		Once()

	body, _ := json.Marshal(requests.Login{Email: "ada@example.com", Password: "Secret123!", UserType: "doctor"})
	loginReq, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/auth/login", bytes.NewBuffer(body))
	require.NoError(t, err)
	loginReq.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	loginReq.AddCookie(cookie)
	loginResp, err := server.Client().Do(loginReq)
	require.NoError(t, err)
	loginResp.Body.Close()
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	session := nextSession()
	assert.True(t, session.IsLoggedIn)
	assert.Equal(t, "doc-1", session.UserID)
	assert.Equal(t, "doctor", session.UserType)
	authUsecase.AssertExpectations(t)
}
