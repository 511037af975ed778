package registration

import (
	"context"
	"medportal-service/internal/app/config"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/models"
	"medportal-service/internal/app/services/core/wizard"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/dto/responses"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type registrationUsecase struct {
	Wizards        *wizard.Registry
	AuthClient     contracts.AuthClient
	Storage        contracts.Storage
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

// NewWizardRegistry builds the wizard registry whose evicted wizards release
// their staged profile pictures.
func NewWizardRegistry(storage contracts.Storage, internalConfig *config.InternalConfig, logger *zap.Logger) *wizard.Registry {
	idleTTL := time.Duration(internalConfig.Wizard.IdleTTLInMinutes) * time.Minute
	return wizard.NewRegistry(idleTTL, func(w *wizard.Wizard) {
		state := w.State()
		if photo := w.Photo(); photo != nil && !state.Completed && !state.Submitting {
			removeStagedPhoto(context.Background(), storage, internalConfig.Minio.BucketName, photo, logger)
		}
	}, logger)
}

func NewRegistrationUsecase(
	wizards *wizard.Registry,
	authClient contracts.AuthClient,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.RegistrationUsecase {
	return &registrationUsecase{
		Wizards:        wizards,
		AuthClient:     authClient,
		Storage:        storage,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

func (uc *registrationUsecase) wizardFor(browserSessionID, role string) (*wizard.Wizard, models.UserType, error) {
	userType, ok := models.ParseUserType(role)
	if !ok {
		return nil, "", exceptions.ErrWizardUnknownRole(nil, role)
	}
	w, err := uc.Wizards.Get(browserSessionID, userType)
	if err != nil {
		return nil, "", err
	}
	return w, userType, nil
}

func (uc *registrationUsecase) State(ctx context.Context, browserSessionID, role string) (*responses.WizardState, error) {
	w, _, err := uc.wizardFor(browserSessionID, role)
	if err != nil {
		return nil, err
	}
	return w.State(), nil
}

func (uc *registrationUsecase) Next(ctx context.Context, browserSessionID, role string, fields map[string]string) (*responses.WizardState, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("registrationUsecase.Next called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardRoleKey, role),
	)

	w, _, err := uc.wizardFor(browserSessionID, role)
	if err != nil {
		return nil, err
	}

	advanced, err := w.Next(utils.SanitizeWizardFields(fields))
	if err != nil {
		uc.Log.Warn("registrationUsecase.Next rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	state := w.State()
	uc.Log.Info("registrationUsecase.Next succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardStepKey, state.StepName),
		zap.Bool("advanced", advanced),
		zap.Int("invalid_fields", len(state.Errors)),
	)
	return state, nil
}

func (uc *registrationUsecase) Back(ctx context.Context, browserSessionID, role string) (*responses.WizardState, error) {
	w, _, err := uc.wizardFor(browserSessionID, role)
	if err != nil {
		return nil, err
	}
	if err := w.Back(); err != nil {
		return nil, err
	}
	return w.State(), nil
}

func (uc *registrationUsecase) UploadPhoto(ctx context.Context, browserSessionID, role string, upload *contracts.StagedUpload) (*responses.WizardState, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("registrationUsecase.UploadPhoto called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardRoleKey, role),
	)

	w, _, err := uc.wizardFor(browserSessionID, role)
	if err != nil {
		return nil, err
	}
	if !w.OnPhotoStep() {
		return nil, exceptions.ErrWizardNotOnPhotoStep(nil)
	}

	bucketName := uc.InternalConfig.Minio.BucketName
	objectName := utils.GenerateObjectName(uc.InternalConfig.Minio.StagingPrefix, browserSessionID, upload.FileName)
	_, err = uc.Storage.UploadFile(ctx, upload.Content, upload.Size, upload.ContentType, bucketName, objectName)
	if err != nil {
		uc.Log.Error("registrationUsecase.UploadPhoto error uploading to storage",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	staged := &wizard.StagedPhoto{
		ObjectName:  objectName,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Size:        upload.Size,
	}
	previous, err := w.SetPhoto(staged)
	if err != nil {
		removeStagedPhoto(ctx, uc.Storage, bucketName, staged, uc.Log)
		return nil, err
	}
	if previous != nil {
		removeStagedPhoto(ctx, uc.Storage, bucketName, previous, uc.Log)
	}

	uc.Log.Info("registrationUsecase.UploadPhoto succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return w.State(), nil
}

func (uc *registrationUsecase) Submit(ctx context.Context, browserSessionID, role string) (*responses.WizardState, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("registrationUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardRoleKey, role),
	)

	w, userType, err := uc.wizardFor(browserSessionID, role)
	if err != nil {
		return nil, err
	}

	var submitted *wizard.StagedPhoto
	err = w.Submit(ctx, func(ctx context.Context, fields map[string]string, photo *wizard.StagedPhoto) error {
		form := &requests.RegisterForm{UserType: userType.String(), Fields: fields}
		if photo != nil {
			content, err := uc.Storage.GetObject(ctx, uc.InternalConfig.Minio.BucketName, photo.ObjectName)
			if err != nil {
				return err
			}
			defer content.Close()
			form.ProfilePicture = &requests.ProfilePicture{
				FileName:    photo.FileName,
				ContentType: photo.ContentType,
				Size:        photo.Size,
				Content:     content,
			}
		}
		submitted = photo
		return uc.register(ctx, userType, form)
	})
	if err != nil {
		uc.Log.Error("registrationUsecase.Submit failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if submitted != nil {
		removeStagedPhoto(ctx, uc.Storage, uc.InternalConfig.Minio.BucketName, submitted, uc.Log)
	}

	uc.Log.Info("registrationUsecase.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWizardRoleKey, role),
	)
	return w.State(), nil
}

func (uc *registrationUsecase) register(ctx context.Context, userType models.UserType, form *requests.RegisterForm) error {
	switch userType {
	case models.UserTypeDoctor:
		return uc.AuthClient.RegisterDoctor(ctx, form)
	case models.UserTypePatient:
		return uc.AuthClient.RegisterPatient(ctx, form)
	case models.UserTypeReceptionist:
		return uc.AuthClient.RegisterReceptionist(ctx, form)
	default:
		return exceptions.ErrWizardUnknownRole(nil, userType.String())
	}
}

func (uc *registrationUsecase) Reset(ctx context.Context, browserSessionID, role string) error {
	userType, ok := models.ParseUserType(role)
	if !ok {
		return exceptions.ErrWizardUnknownRole(nil, role)
	}
	uc.Wizards.Drop(browserSessionID, userType)

	uc.Log.Info("registrationUsecase.Reset succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingWizardRoleKey, role),
	)
	return nil
}

func removeStagedPhoto(ctx context.Context, storage contracts.Storage, bucketName string, photo *wizard.StagedPhoto, logger *zap.Logger) {
	err := storage.RemoveObject(ctx, bucketName, photo.ObjectName)
	if err != nil {
		logger.Warn("registration failed to remove staged profile picture",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingObjectNameKey, photo.ObjectName),
			zap.Error(err),
		)
	}
}
