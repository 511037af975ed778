package wizard

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"medportal-service/internal/app/models"
	"medportal-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validAccount() map[string]string {
	return map[string]string{
		"username":        "house_md",
		"email":           "house@ppth.org",
		"password":        "Passw0rd!",
		"confirmPassword": "Passw0rd!",
	}
}

func validPersonal() map[string]string {
	return map[string]string{
		"firstName": "Gregory",
		"lastName":  "House",
		"phone":     "+6281234567890",
	}
}

func newWizard(t *testing.T, userType models.UserType) *Wizard {
	t.Helper()
	definition, ok := DefinitionFor(userType)
	require.True(t, ok)
	return New(definition)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	return customErr.StatusCode
}

func TestNextDoesNotAdvanceOnInvalidEmail(t *testing.T) {
	for _, userType := range []models.UserType{models.UserTypeDoctor, models.UserTypePatient, models.UserTypeReceptionist} {
		t.Run(userType.String(), func(t *testing.T) {
			w := newWizard(t, userType)
			fields := validAccount()
			fields["email"] = "not-an-email"

			advanced, err := w.Next(fields)
			require.NoError(t, err)
			assert.False(t, advanced)

			state := w.State()
			assert.Equal(t, 0, state.ActiveStep)
			require.Len(t, state.Errors, 1)
			assert.Equal(t, "email", state.Errors[0].Field)
		})
	}
}

func TestNextAdvancesThroughDoctorSteps(t *testing.T) {
	w := newWizard(t, models.UserTypeDoctor)

	advanced, err := w.Next(validAccount())
	require.NoError(t, err)
	assert.True(t, advanced)

	advanced, err = w.Next(validPersonal())
	require.NoError(t, err)
	assert.True(t, advanced)

	advanced, err = w.Next(map[string]string{"specialization": "Diagnostics", "licenseNumber": "LIC-42"})
	require.NoError(t, err)
	assert.True(t, advanced)

	state := w.State()
	assert.Equal(t, 3, state.ActiveStep)
	assert.Equal(t, "photo", state.StepName)
	assert.Equal(t, []string{"account", "personal", "professional", "photo"}, state.Steps)
	assert.NotContains(t, state.Fields, "password")
	assert.NotContains(t, state.Fields, "confirmPassword")
	assert.Equal(t, "Diagnostics", state.Fields["specialization"])

	advanced, err = w.Next(nil)
	require.NoError(t, err)
	assert.False(t, advanced, "the final step never advances past itself")
}

func TestNextIgnoresFieldsOfOtherSteps(t *testing.T) {
	w := newWizard(t, models.UserTypeReceptionist)
	fields := validAccount()
	fields["firstName"] = "Smuggled"

	_, err := w.Next(fields)
	require.NoError(t, err)
	assert.NotContains(t, w.State().Fields, "firstName")
}

func TestPasswordConfirmationMustMatch(t *testing.T) {
	w := newWizard(t, models.UserTypePatient)
	fields := validAccount()
	fields["confirmPassword"] = "Different1!"

	advanced, err := w.Next(fields)
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, "confirmPassword", w.State().Errors[0].Field)
}

func TestPatientPersonalStep(t *testing.T) {
	w := newWizard(t, models.UserTypePatient)
	_, err := w.Next(validAccount())
	require.NoError(t, err)

	personal := validPersonal()
	personal["dateOfBirth"] = "1990-02-30"
	personal["gender"] = "unknown"
	advanced, err := w.Next(personal)
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Len(t, w.State().Errors, 2)

	personal["dateOfBirth"] = "1990-02-28"
	personal["gender"] = "female"
	advanced, err = w.Next(personal)
	require.NoError(t, err)
	assert.True(t, advanced)
}

func TestBack(t *testing.T) {
	w := newWizard(t, models.UserTypeReceptionist)

	err := w.Back()
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = w.Next(validAccount())
	require.NoError(t, err)
	require.NoError(t, w.Back())
	assert.Equal(t, 0, w.State().ActiveStep)
	assert.Equal(t, "house@ppth.org", w.State().Fields["email"], "fields survive going back")
}

func receptionistOnPhotoStep(t *testing.T) *Wizard {
	t.Helper()
	w := newWizard(t, models.UserTypeReceptionist)
	_, err := w.Next(validAccount())
	require.NoError(t, err)
	_, err = w.Next(validPersonal())
	require.NoError(t, err)
	require.Equal(t, "photo", w.State().StepName)
	return w
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("only from the final step", func(t *testing.T) {
		w := newWizard(t, models.UserTypeDoctor)
		err := w.Submit(ctx, func(context.Context, map[string]string, *StagedPhoto) error {
			t.Fatal("submit must not run")
			return nil
		})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("success is terminal", func(t *testing.T) {
		w := receptionistOnPhotoStep(t)
		calls := 0
		submit := func(_ context.Context, fields map[string]string, photo *StagedPhoto) error {
			calls++
			assert.Equal(t, "Passw0rd!", fields["password"])
			assert.Nil(t, photo)
			return nil
		}

		require.NoError(t, w.Submit(ctx, submit))
		assert.True(t, w.State().Completed)

		err := w.Submit(ctx, submit)
		assert.Equal(t, http.StatusConflict, statusOf(t, err))
		assert.Equal(t, 1, calls)

		_, err = w.Next(validAccount())
		assert.Error(t, err)
	})

	t.Run("failure releases the flag", func(t *testing.T) {
		w := receptionistOnPhotoStep(t)
		err := w.Submit(ctx, func(context.Context, map[string]string, *StagedPhoto) error {
			return errors.New("backend rejected")
		})
		assert.EqualError(t, err, "backend rejected")

		state := w.State()
		assert.False(t, state.Submitting)
		assert.False(t, state.Completed)
		assert.Equal(t, "photo", state.StepName)

		require.NoError(t, w.Submit(ctx, func(context.Context, map[string]string, *StagedPhoto) error { return nil }))
	})

	t.Run("concurrent submits run once", func(t *testing.T) {
		w := receptionistOnPhotoStep(t)
		release := make(chan struct{})
		started := make(chan struct{})
		var calls int
		var mu sync.Mutex

		submit := func(context.Context, map[string]string, *StagedPhoto) error {
			mu.Lock()
			calls++
			mu.Unlock()
			close(started)
			<-release
			return nil
		}

		errs := make(chan error, 1)
		go func() { errs <- w.Submit(ctx, submit) }()
		<-started

		err := w.Submit(ctx, submit)
		assert.Equal(t, http.StatusConflict, statusOf(t, err))
		assert.True(t, w.State().Submitting)

		close(release)
		require.NoError(t, <-errs)
		assert.Equal(t, 1, calls)
	})

	t.Run("staged photo is handed to the submitter", func(t *testing.T) {
		w := receptionistOnPhotoStep(t)
		previous, err := w.SetPhoto(&StagedPhoto{ObjectName: "a", FileName: "a.png"})
		require.NoError(t, err)
		assert.Nil(t, previous)

		previous, err = w.SetPhoto(&StagedPhoto{ObjectName: "b", FileName: "b.png"})
		require.NoError(t, err)
		assert.Equal(t, "a", previous.ObjectName)
		assert.Equal(t, "b.png", w.State().ProfilePicture)

		require.NoError(t, w.Submit(ctx, func(_ context.Context, _ map[string]string, photo *StagedPhoto) error {
			assert.Equal(t, "b", photo.ObjectName)
			return nil
		}))
	})
}

func TestSetPhotoOutsidePhotoStep(t *testing.T) {
	w := newWizard(t, models.UserTypeDoctor)
	_, err := w.SetPhoto(&StagedPhoto{ObjectName: "a"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestRegistry(t *testing.T) {
	var evicted []*Wizard
	registry := NewRegistry(time.Minute, func(w *Wizard) { evicted = append(evicted, w) }, zap.NewNop())
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return now }

	doctor, err := registry.Get("browser-a", models.UserTypeDoctor)
	require.NoError(t, err)
	again, err := registry.Get("browser-a", models.UserTypeDoctor)
	require.NoError(t, err)
	assert.Same(t, doctor, again)

	patient, err := registry.Get("browser-a", models.UserTypePatient)
	require.NoError(t, err)
	assert.NotSame(t, doctor, patient)

	_, err = registry.Get("browser-a", models.UserType("admin"))
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	registry.Drop("browser-a", models.UserTypePatient)
	assert.Equal(t, []*Wizard{patient}, evicted)

	now = now.Add(2 * time.Minute)
	_, err = registry.Get("browser-b", models.UserTypeReceptionist)
	require.NoError(t, err)
	assert.Equal(t, 1, registry.EvictIdle())
	assert.Equal(t, 1, registry.Len())
	assert.Len(t, evicted, 2)

	fresh, err := registry.Get("browser-a", models.UserTypeDoctor)
	require.NoError(t, err)
	assert.NotSame(t, doctor, fresh, "evicted wizards restart at step 0")
}
