package wizard

import (
	"context"
	"maps"
	"medportal-service/internal/pkg/dto/responses"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/validators"
	"sync"
)

// StagedPhoto points at a profile picture uploaded to object storage before submit.
type StagedPhoto struct {
	ObjectName  string
	FileName    string
	ContentType string
	Size        int64
}

type SubmitFunc func(ctx context.Context, fields map[string]string, photo *StagedPhoto) error

var secretFields = []string{"password", "confirmPassword"}

// Wizard is one registration in progress. Steps only advance when the current
// step validates, and a successful submit is terminal.
type Wizard struct {
	mu         sync.Mutex
	definition Definition
	activeStep int
	fields     map[string]string
	failures   []validators.Result
	photo      *StagedPhoto
	submitting bool
	completed  bool
}

func New(definition Definition) *Wizard {
	return &Wizard{
		definition: definition,
		fields:     make(map[string]string),
	}
}

// Next merges the fields that belong to the active step and advances when the
// step validates. It reports whether the active step moved.
func (w *Wizard) Next(fields map[string]string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkMutableLocked(); err != nil {
		return false, err
	}

	step := w.definition.Steps[w.activeStep]
	for _, name := range step.Fields {
		if value, ok := fields[name]; ok {
			w.fields[name] = value
		}
	}

	w.failures = validateStep(step, w.fields)
	if len(w.failures) > 0 {
		return false, nil
	}
	if w.activeStep == w.definition.lastStep() {
		return false, nil
	}
	w.activeStep++
	return true, nil
}

func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkMutableLocked(); err != nil {
		return err
	}
	if w.activeStep == 0 {
		return exceptions.ErrWizardCannotGoBack(nil)
	}
	w.activeStep--
	w.failures = nil
	return nil
}

// SetPhoto stages a profile picture on the photo step and returns the one it replaced.
func (w *Wizard) SetPhoto(photo *StagedPhoto) (*StagedPhoto, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkMutableLocked(); err != nil {
		return nil, err
	}
	if !w.definition.Steps[w.activeStep].Photo {
		return nil, exceptions.ErrWizardNotOnPhotoStep(nil)
	}
	previous := w.photo
	w.photo = photo
	return previous, nil
}

func (w *Wizard) OnPhotoStep() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.definition.Steps[w.activeStep].Photo
}

func (w *Wizard) Photo() *StagedPhoto {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.photo
}

// Submit runs submit at most once per successful registration. While submit is
// running further calls fail with a conflict; on error the wizard stays on the
// final step and may be submitted again.
func (w *Wizard) Submit(ctx context.Context, submit SubmitFunc) error {
	w.mu.Lock()
	if err := w.checkMutableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.activeStep != w.definition.lastStep() {
		w.mu.Unlock()
		return exceptions.ErrWizardNotOnFinalStep(nil)
	}
	for _, step := range w.definition.Steps {
		if failures := validateStep(step, w.fields); len(failures) > 0 {
			w.failures = failures
			w.mu.Unlock()
			return exceptions.ErrWizardStepInvalid(nil, step.Name, failures[0].Message)
		}
	}
	w.submitting = true
	fields := maps.Clone(w.fields)
	photo := w.photo
	w.mu.Unlock()

	err := submit(ctx, fields, photo)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return err
	}
	w.completed = true
	w.failures = nil
	return nil
}

func (w *Wizard) State() *responses.WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()

	fields := maps.Clone(w.fields)
	for _, name := range secretFields {
		delete(fields, name)
	}

	state := &responses.WizardState{
		UserType:   w.definition.UserType.String(),
		ActiveStep: w.activeStep,
		StepName:   w.definition.Steps[w.activeStep].Name,
		Steps:      w.definition.StepNames(),
		Completed:  w.completed,
		Submitting: w.submitting,
		Fields:     fields,
	}
	if w.photo != nil {
		state.ProfilePicture = w.photo.FileName
	}
	for _, failure := range w.failures {
		state.Errors = append(state.Errors, responses.FieldError{Field: failure.Field, Message: failure.Message})
	}
	return state
}

func (w *Wizard) checkMutableLocked() error {
	if w.completed {
		return exceptions.ErrWizardAlreadySubmitted(nil)
	}
	if w.submitting {
		return exceptions.ErrWizardSubmissionInProgress(nil)
	}
	return nil
}

func validateStep(step Step, fields map[string]string) []validators.Result {
	var failures []validators.Result
	for _, rule := range step.Rules {
		if result := rule(fields); !result.Valid {
			failures = append(failures, result)
		}
	}
	return failures
}
