package registration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"medportal-service/internal/app/config"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) UploadFile(_ context.Context, file io.Reader, _ int64, _, bucketName, objectName string) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucketName+"/"+objectName] = content
	return objectName, nil
}

func (s *memoryStorage) GetObject(_ context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.objects[bucketName+"/"+objectName]
	if !ok {
		return nil, exceptions.ErrMinioGetObject(errors.New("not found"), bucketName)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (s *memoryStorage) RemoveObject(_ context.Context, bucketName, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucketName+"/"+objectName)
	return nil
}

func (s *memoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// registeringClient records registrations; calls outside registration panic.
type registeringClient struct {
	contracts.AuthClient
	err      error
	forms    []*requests.RegisterForm
	pictures []string
}

func (c *registeringClient) record(form *requests.RegisterForm) error {
	if form.ProfilePicture != nil {
		content, _ := io.ReadAll(form.ProfilePicture.Content)
		c.pictures = append(c.pictures, string(content))
	}
	c.forms = append(c.forms, form)
	return c.err
}

func (c *registeringClient) RegisterDoctor(_ context.Context, form *requests.RegisterForm) error {
	return c.record(form)
}

func (c *registeringClient) RegisterPatient(_ context.Context, form *requests.RegisterForm) error {
	return c.record(form)
}

func (c *registeringClient) RegisterReceptionist(_ context.Context, form *requests.RegisterForm) error {
	return c.record(form)
}

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Wizard: config.AppWizard{IdleTTLInMinutes: 30},
		Minio:  config.AppMinio{BucketName: "portal", StagingPrefix: "staging"},
	}
}

func newUsecase(client *registeringClient, storage *memoryStorage) contracts.RegistrationUsecase {
	cfg := testConfig()
	wizards := NewWizardRegistry(storage, cfg, zap.NewNop())
	return NewRegistrationUsecase(wizards, client, storage, cfg, zap.NewNop())
}

func walkReceptionistToPhoto(t *testing.T, usecase contracts.RegistrationUsecase) {
	t.Helper()
	ctx := context.Background()
	state, err := usecase.Next(ctx, "browser-1", "receptionist", map[string]string{
		"username":        "pam_b",
		"email":           " Pam@Dunder.com ",
		"password":        "Passw0rd!",
		"confirmPassword": "Passw0rd!",
	})
	require.NoError(t, err)
	require.Empty(t, state.Errors)

	state, err = usecase.Next(ctx, "browser-1", "receptionist", map[string]string{
		"firstName": "Pam",
		"lastName":  "Beesly",
		"phone":     "+1 570 555-0100",
	})
	require.NoError(t, err)
	require.Empty(t, state.Errors)
	require.Equal(t, "photo", state.StepName)
}

func TestRegistrationFlow(t *testing.T) {
	ctx := context.Background()
	client := &registeringClient{}
	storage := newMemoryStorage()
	usecase := newUsecase(client, storage)

	walkReceptionistToPhoto(t, usecase)

	state, err := usecase.UploadPhoto(ctx, "browser-1", "receptionist", &contracts.StagedUpload{
		FileName:    "pam.png",
		ContentType: "image/png",
		Size:        9,
		Content:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pam.png", state.ProfilePicture)
	assert.Equal(t, 1, storage.Len())

	state, err = usecase.Submit(ctx, "browser-1", "receptionist")
	require.NoError(t, err)
	assert.True(t, state.Completed)

	require.Len(t, client.forms, 1)
	form := client.forms[0]
	assert.Equal(t, "receptionist", form.UserType)
	assert.Equal(t, "pam@dunder.com", form.Fields["email"])
	assert.Equal(t, []string{"png-bytes"}, client.pictures)
	assert.Equal(t, 0, storage.Len(), "staged picture is removed after submit")

	_, err = usecase.Submit(ctx, "browser-1", "receptionist")
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, http.StatusConflict, customErr.StatusCode)
	assert.Len(t, client.forms, 1)
}

func TestSubmitFailureKeepsWizardOnFinalStep(t *testing.T) {
	ctx := context.Background()
	client := &registeringClient{err: exceptions.ErrAuthFailed(nil, "register", http.StatusBadRequest, "Email already registered")}
	usecase := newUsecase(client, newMemoryStorage())
	walkReceptionistToPhoto(t, usecase)

	_, err := usecase.Submit(ctx, "browser-1", "receptionist")
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, "Email already registered", customErr.ClientMessage)

	state, err := usecase.State(ctx, "browser-1", "receptionist")
	require.NoError(t, err)
	assert.False(t, state.Completed)
	assert.False(t, state.Submitting)
	assert.Equal(t, "photo", state.StepName)
}

func TestUploadPhotoOutsidePhotoStep(t *testing.T) {
	storage := newMemoryStorage()
	usecase := newUsecase(&registeringClient{}, storage)

	_, err := usecase.UploadPhoto(context.Background(), "browser-1", "doctor", &contracts.StagedUpload{
		FileName: "x.png",
		Content:  strings.NewReader("x"),
	})
	assert.Error(t, err)
	assert.Equal(t, 0, storage.Len())
}

func TestReplacedAndResetPhotosAreRemoved(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	usecase := newUsecase(&registeringClient{}, storage)
	walkReceptionistToPhoto(t, usecase)

	for _, name := range []string{"first.png", "second.png"} {
		_, err := usecase.UploadPhoto(ctx, "browser-1", "receptionist", &contracts.StagedUpload{
			FileName: name,
			Content:  strings.NewReader(name),
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, storage.Len())

	require.NoError(t, usecase.Reset(ctx, "browser-1", "receptionist"))
	assert.Equal(t, 0, storage.Len())

	state, err := usecase.State(ctx, "browser-1", "receptionist")
	require.NoError(t, err)
	assert.Equal(t, 0, state.ActiveStep)
}

func TestUnknownRole(t *testing.T) {
	usecase := newUsecase(&registeringClient{}, newMemoryStorage())
	_, err := usecase.State(context.Background(), "browser-1", "admin")
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, http.StatusNotFound, customErr.StatusCode)
}
