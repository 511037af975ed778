package controllers

import (
	"context"
	"medportal-service/internal/app/config"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const profilePictureFormKey = "profile_picture"

type RegistrationController struct {
	Log                 *zap.Logger
	RegistrationUsecase contracts.RegistrationUsecase
	InternalConfig      *config.InternalConfig
	timeout             time.Duration
}

func NewRegistrationController(logger *zap.Logger, registrationUsecase contracts.RegistrationUsecase, internalConfig *config.InternalConfig) *RegistrationController {
	return &RegistrationController{
		Log:                 logger,
		RegistrationUsecase: registrationUsecase,
		InternalConfig:      internalConfig,
		timeout:             requestTimeout(internalConfig.Backend.RequestTimeoutSeconds),
	}
}

func (ctrl *RegistrationController) State(w http.ResponseWriter, r *http.Request) {
	state, err := ctrl.RegistrationUsecase.State(r.Context(), utils.GetBrowserSessionID(r.Context()), chi.URLParam(r, "role"))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WizardStateMessage, state)
}

// Next answers 200 even when the step has invalid fields; they are listed in
// the returned state and the wizard stays on the step.
func (ctrl *RegistrationController) Next(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.WizardStep)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	state, err := ctrl.RegistrationUsecase.Next(r.Context(), utils.GetBrowserSessionID(r.Context()), chi.URLParam(r, "role"), request.Fields)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.WizardStepAdvancedMessage
	if len(state.Errors) > 0 {
		message = constvars.WizardStepValidationFailedMessage
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, state)
}

func (ctrl *RegistrationController) Back(w http.ResponseWriter, r *http.Request) {
	state, err := ctrl.RegistrationUsecase.Back(r.Context(), utils.GetBrowserSessionID(r.Context()), chi.URLParam(r, "role"))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WizardStepBackMessage, state)
}

func (ctrl *RegistrationController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	maxSizeInMB := ctrl.InternalConfig.Minio.ProfilePictureMaxUploadSizeInMB
	err := r.ParseMultipartForm(maxSizeInMB << 20)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile(profilePictureFormKey)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	err = utils.ValidateImage(fileHeader, maxSizeInMB)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrImageValidation(err))
		return
	}

	contentType := fileHeader.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	state, err := ctrl.RegistrationUsecase.UploadPhoto(ctx, utils.GetBrowserSessionID(r.Context()), chi.URLParam(r, "role"), &contracts.StagedUpload{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WizardPhotoUploadedMessage, state)
}

func (ctrl *RegistrationController) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	state, err := ctrl.RegistrationUsecase.Submit(ctx, utils.GetBrowserSessionID(r.Context()), chi.URLParam(r, "role"))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.WizardSubmittedMessage, state)
}

func (ctrl *RegistrationController) Reset(w http.ResponseWriter, r *http.Request) {
	err := ctrl.RegistrationUsecase.Reset(r.Context(), utils.GetBrowserSessionID(r.Context()), chi.URLParam(r, "role"))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WizardResetMessage, nil)
}
