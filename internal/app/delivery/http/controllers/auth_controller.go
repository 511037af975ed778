package controllers

import (
	"context"
	"fmt"
	"io"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/models"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AuthController struct {
	Log         *zap.Logger
	AuthUsecase contracts.AuthUsecase
	timeout     time.Duration
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase, timeoutSeconds int) *AuthController {
	return &AuthController{
		Log:         logger,
		AuthUsecase: authUsecase,
		timeout:     requestTimeout(timeoutSeconds),
	}
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	// Bind body to request
	request := new(requests.Login)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Sanitize request
	utils.SanitizeLoginRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	response, err := ctrl.AuthUsecase.Login(ctx, sessionContext, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccessMessage, response)
}

func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	err := ctrl.AuthUsecase.Logout(ctx, sessionContext)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LogoutSuccessMessage, nil)
}

func (ctrl *AuthController) RefreshToken(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	response, err := ctrl.AuthUsecase.Refresh(ctx, sessionContext)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RefreshTokenSuccessMessage, response)
}

func (ctrl *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.ForgotPassword)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Sanitize request
	utils.SanitizeForgotPasswordRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	err = ctrl.AuthUsecase.ForgotPassword(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ForgotPasswordSuccessMessage, nil)
}

func (ctrl *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.ResetPassword)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Sanitize request
	utils.SanitizeResetPasswordRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	err = ctrl.AuthUsecase.ResetPassword(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResetPasswordSuccessMessage, nil)
}

func (ctrl *AuthController) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	request := &requests.VerifyAccount{Token: r.URL.Query().Get("token")}
	err := utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	err = ctrl.AuthUsecase.VerifyAccount(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.VerifyAccountSuccessMessage, nil)
}

// Session returns the browser view of the current session.
func (ctrl *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSessionSuccessMessage, utils.BuildSessionResponse(sessionContext.Snapshot()))
}

// SessionStream pushes the browser view of the session as server-sent events,
// once on connect and again after every change, until the client goes away or
// the session context is evicted.
func (ctrl *AuthController) SessionStream(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrStreamingUnsupported(nil))
		return
	}

	// Subscribe before the first snapshot so no change is missed in between
	updates, cancel := sessionContext.Subscribe()
	defer cancel()

	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextEventStream)
	w.Header().Set(constvars.HeaderCacheControl, "no-cache")
	w.Header().Set(constvars.HeaderConnection, "keep-alive")
	w.WriteHeader(constvars.StatusOK)

	requestID := utils.GetRequestID(r.Context())
	session := sessionContext.Snapshot()
	for {
		err := writeSessionEvent(w, session)
		if err != nil {
			ctrl.Log.Warn("AuthController.SessionStream failed to write event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return
		}
		flusher.Flush()

		select {
		case <-r.Context().Done():
			return
		case next, open := <-updates:
			if !open {
				return
			}
			session = next
		}
	}
}

func writeSessionEvent(w io.Writer, session models.Session) error {
	data, err := json.Marshal(utils.BuildSessionResponse(session))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: session\ndata: %s\n\n", data)
	return err
}

func (ctrl *AuthController) SetAssignment(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	// Bind body to request
	request := new(requests.SessionAssignment)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	response, err := ctrl.AuthUsecase.SetAssignment(r.Context(), sessionContext, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SessionAssignmentSuccessMessage, response)
}
