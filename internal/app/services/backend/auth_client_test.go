package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthClient(t *testing.T, handler http.HandlerFunc) *authClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAuthClient(NewRestyClient(server.URL, 5*time.Second), zap.NewNop()).(*authClient)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestAuthClientLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("doctor response passes through", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/login/doctor", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "a@b.com", body["email"])
			assert.Equal(t, "x", body["password"])
			writeJSON(w, http.StatusOK, `{"accessToken":"acc","refreshToken":"ref","firstName":"Gregory","lastName":"House","profilePictureUrl":"https://cdn/p.png","doctorId":"doc-1"}`)
		})

		login, err := client.Login(ctx, "a@b.com", "x", "doctor")
		require.NoError(t, err)
		assert.Equal(t, "acc", login.AccessToken)
		assert.Equal(t, "ref", login.RefreshToken)
		assert.Equal(t, "doc-1", login.DoctorID)
		assert.Equal(t, "Gregory", login.FirstName)
		assert.Empty(t, login.PatientID)
	})

	t.Run("patient response inside a data envelope", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"data":{"accessToken":"acc","refreshToken":"ref","firstName":"Ada","lastName":"L","patientId":"pat-1"}}`)
		})

		login, err := client.Login(ctx, "a@b.com", "x", "patient")
		require.NoError(t, err)
		assert.Equal(t, "pat-1", login.PatientID)
	})

	t.Run("receptionist response is flattened", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/login/receptionist", r.URL.Path)
			writeJSON(w, http.StatusOK, `{"accessToken":"acc","refreshToken":"ref","receptionist":{"_id":"rec-1","firstName":"Pam","lastName":"B","profilePictureUrl":"https://cdn/r.png","assignedDoctor":{"_id":"doc-5"}}}`)
		})

		login, err := client.Login(ctx, "a@b.com", "x", "receptionist")
		require.NoError(t, err)
		assert.Equal(t, "rec-1", login.ReceptionistID)
		assert.Equal(t, "doc-5", login.AssignedDoctorID)
		assert.Equal(t, "Pam", login.FirstName)
		assert.Equal(t, "https://cdn/r.png", login.ProfilePictureURL)
	})

	t.Run("unassigned receptionist", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"accessToken":"acc","receptionist":{"receptionistId":"rec-2","assignedDoctorId":null}}`)
		})

		login, err := client.Login(ctx, "a@b.com", "x", "receptionist")
		require.NoError(t, err)
		assert.Equal(t, "rec-2", login.ReceptionistID)
		assert.Empty(t, login.AssignedDoctorID)
	})

	t.Run("backend message is carried on rejection", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"Please verify your account first"}`)
		})

		_, err := client.Login(ctx, "a@b.com", "x", "doctor")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusUnauthorized, customErr.StatusCode)
		assert.Equal(t, "Please verify your account first", customErr.ClientMessage)
	})

	t.Run("missing tokens are rejected", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"firstName":"Ghost"}`)
		})

		_, err := client.Login(ctx, "a@b.com", "x", "doctor")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusBadGateway, customErr.StatusCode)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		client := NewAuthClient(NewRestyClient("http://127.0.0.1:1", time.Second), zap.NewNop())
		_, err := client.Login(ctx, "a@b.com", "x", "doctor")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusBadGateway, customErr.StatusCode)
	})
}

func TestAuthClientRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("multipart form with profile picture", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/register/patient", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "ada@b.com", r.FormValue("email"))
			assert.Empty(t, r.FormValue("confirmPassword"))

			file, header, err := r.FormFile("profilePicture")
			require.NoError(t, err)
			defer file.Close()
			content, _ := io.ReadAll(file)
			assert.Equal(t, "avatar.png", header.Filename)
			assert.Equal(t, "png-bytes", string(content))

			writeJSON(w, http.StatusCreated, `{"message":"registered"}`)
		})

		err := client.RegisterPatient(ctx, &requests.RegisterForm{
			UserType: "patient",
			Fields:   map[string]string{"email": "ada@b.com", "password": "Passw0rd!", "confirmPassword": "Passw0rd!"},
			ProfilePicture: &requests.ProfilePicture{
				FileName:    "avatar.png",
				ContentType: "image/png",
				Content:     strings.NewReader("png-bytes"),
			},
		})
		assert.NoError(t, err)
	})

	t.Run("first field level error wins", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, `{"message":"Validation failed","errors":{"email":"Email already registered"}}`)
		})

		err := client.RegisterDoctor(ctx, &requests.RegisterForm{UserType: "doctor", Fields: map[string]string{"email": "a@b.com"}})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Email already registered", customErr.ClientMessage)
	})

	t.Run("generic message fallback", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{}`)
		})

		err := client.RegisterReceptionist(ctx, &requests.RegisterForm{UserType: "receptionist"})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusBadGateway, customErr.StatusCode)
		assert.Equal(t, "registration failed, please try again", customErr.ClientMessage)
	})
}

func TestAuthClientOneShotCalls(t *testing.T) {
	ctx := context.Background()
	var calls []string
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/activate_account":
			assert.Equal(t, "verify-token", r.URL.Query().Get("token"))
			writeJSON(w, http.StatusOK, `{"message":"verified"}`)
		case "/api/v1/reset-password":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "reset-token", body["token"])
			writeJSON(w, http.StatusBadRequest, `{"message":"Reset link expired"}`)
		default:
			writeJSON(w, http.StatusOK, `{}`)
		}
	})

	assert.NoError(t, client.RequestPasswordReset(ctx, "a@b.com", "doctor"))
	assert.NoError(t, client.VerifyAccount(ctx, "verify-token"))

	err := client.ResetPassword(ctx, "reset-token", "Passw0rd!")
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, "Reset link expired", customErr.ClientMessage)

	assert.Equal(t, []string{
		"POST /api/v1/request-reset",
		"GET /activate_account",
		"POST /api/v1/reset-password",
	}, calls)
}

func TestAuthClientRefreshAndLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh returns rotated tokens", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ref", body["refreshToken"])
			writeJSON(w, http.StatusOK, `{"accessToken":"acc-2","refreshToken":"ref-2"}`)
		})

		tokens, err := client.RefreshToken(ctx, "ref")
		require.NoError(t, err)
		assert.Equal(t, "acc-2", tokens.AccessToken)
		assert.Equal(t, "ref-2", tokens.RefreshToken)
	})

	t.Run("refresh failure", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"Refresh token expired"}`)
		})

		_, err := client.RefreshToken(ctx, "ref")
		assert.Error(t, err)
	})

	t.Run("logout forwards bearer token", func(t *testing.T) {
		client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/logout", r.URL.Path)
			assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, `{}`)
		})

		assert.NoError(t, client.Logout(ctx, "acc"))
	})
}
