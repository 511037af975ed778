package auth

import (
	"context"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/models"
	"medportal-service/internal/app/services/core/guards"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/dto/responses"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

const forgotPasswordLimiterGroup = "forgot_password"

type authUsecase struct {
	AuthClient            contracts.AuthClient
	EventPublisher        contracts.SessionEventPublisher
	ForgotPasswordLimiter contracts.RateLimiter
	Log                   *zap.Logger
	now                   func() time.Time
}

// NewAuthUsecase composes the backend auth client with the session context.
// forgotPasswordLimiter may be nil, in which case reset requests are not throttled.
func NewAuthUsecase(
	authClient contracts.AuthClient,
	eventPublisher contracts.SessionEventPublisher,
	forgotPasswordLimiter contracts.RateLimiter,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		AuthClient:            authClient,
		EventPublisher:        eventPublisher,
		ForgotPasswordLimiter: forgotPasswordLimiter,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *authUsecase) Login(ctx context.Context, sessionContext contracts.SessionContext, request *requests.Login) (*responses.Login, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserTypeKey, request.UserType),
	)

	userType, ok := models.ParseUserType(request.UserType)
	if !ok {
		uc.Log.Error("authUsecase.Login invalid user type",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserTypeKey, request.UserType),
		)
		return nil, exceptions.ErrInvalidUserType(nil)
	}

	normalized, err := uc.AuthClient.Login(ctx, request.Email, request.Password, userType.String())
	if err != nil {
		uc.Log.Error("authUsecase.Login error from auth client",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	sessionContext.Apply(ctx, buildSession(userType, normalized))
	session := sessionContext.Snapshot()
	uc.publish(ctx, sessionContext, models.SessionEventLoggedIn, session)

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserTypeKey, session.UserType.String()),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return &responses.Login{
		RedirectTo: guards.HomePath(session),
		Session:    utils.BuildSessionResponse(session),
	}, nil
}

// buildSession uses the role id as the user id, so DoctorID == UserID for doctors.
func buildSession(userType models.UserType, login *responses.NormalizedLogin) models.Session {
	session := models.Session{
		UserType:         userType,
		AccessToken:      login.AccessToken,
		RefreshToken:     login.RefreshToken,
		UserFullName:     fullName(login.FirstName, login.LastName),
		ProfilePhotoURL:  login.ProfilePictureURL,
		DoctorID:         login.DoctorID,
		PatientID:        login.PatientID,
		ReceptionistID:   login.ReceptionistID,
		AssignedDoctorID: login.AssignedDoctorID,
	}
	session.UserID = session.RoleID()
	if userType != models.UserTypeReceptionist {
		session.AssignedDoctorID = ""
	}
	return session
}

func fullName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}

func (uc *authUsecase) Logout(ctx context.Context, sessionContext contracts.SessionContext) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session := sessionContext.Snapshot()
	if session.AccessToken != "" {
		err := uc.AuthClient.Logout(ctx, session.AccessToken)
		if err != nil {
			uc.Log.Warn("authUsecase.Logout backend logout failed, clearing session anyway",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	sessionContext.Logout(ctx)
	if session.IsLoggedIn {
		uc.publish(ctx, sessionContext, models.SessionEventLoggedOut, session)
	}

	uc.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (uc *authUsecase) Refresh(ctx context.Context, sessionContext contracts.SessionContext) (*responses.Session, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Refresh called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session := sessionContext.Snapshot()
	if session.RefreshToken == "" {
		uc.Log.Warn("authUsecase.Refresh no refresh token in session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrRefreshTokenMissing(nil)
	}

	tokens, err := uc.AuthClient.RefreshToken(ctx, session.RefreshToken)
	if err != nil {
		uc.Log.Error("authUsecase.Refresh token exchange failed, logging out",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		sessionContext.Logout(ctx)
		uc.publish(ctx, sessionContext, models.SessionEventRefreshFailed, session)
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	sessionContext.SetAccessToken(ctx, tokens.AccessToken)
	if tokens.RefreshToken != "" {
		sessionContext.SetRefreshToken(ctx, tokens.RefreshToken)
	}
	refreshed := sessionContext.Snapshot()
	uc.publish(ctx, sessionContext, models.SessionEventTokenRefreshed, refreshed)

	uc.Log.Info("authUsecase.Refresh succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	response := utils.BuildSessionResponse(refreshed)
	return &response, nil
}

func (uc *authUsecase) ForgotPassword(ctx context.Context, request *requests.ForgotPassword) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.ForgotPassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if uc.ForgotPasswordLimiter != nil {
		allowed, retryAfter, err := uc.ForgotPasswordLimiter.Allow(ctx, forgotPasswordLimiterGroup, request.Email)
		switch {
		case err != nil:
			// Limiter outages must not block password recovery.
			uc.Log.Warn("authUsecase.ForgotPassword limiter unavailable",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		case !allowed:
			uc.Log.Warn("authUsecase.ForgotPassword quota exceeded",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Duration("retry_after", retryAfter),
			)
			return exceptions.ErrTooManyRequests(nil)
		}
	}

	err := uc.AuthClient.RequestPasswordReset(ctx, request.Email, request.UserType)
	if err != nil {
		uc.Log.Error("authUsecase.ForgotPassword error from auth client",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("authUsecase.ForgotPassword succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (uc *authUsecase) ResetPassword(ctx context.Context, request *requests.ResetPassword) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.ResetPassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if request.NewPassword != request.NewPasswordConfirmation {
		return exceptions.ErrPasswordDoNotMatch(nil)
	}

	err := uc.AuthClient.ResetPassword(ctx, request.Token, request.NewPassword)
	if err != nil {
		uc.Log.Error("authUsecase.ResetPassword error from auth client",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("authUsecase.ResetPassword succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (uc *authUsecase) VerifyAccount(ctx context.Context, request *requests.VerifyAccount) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.VerifyAccount called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AuthClient.VerifyAccount(ctx, request.Token)
	if err != nil {
		uc.Log.Error("authUsecase.VerifyAccount error from auth client",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("authUsecase.VerifyAccount succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (uc *authUsecase) SetAssignment(ctx context.Context, sessionContext contracts.SessionContext, request *requests.SessionAssignment) (*responses.Login, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.SetAssignment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session := sessionContext.Snapshot()
	decision := guards.Evaluate(session, guards.CapabilityReceptionist)
	if !decision.Allow {
		uc.Log.Warn("authUsecase.SetAssignment rejected for non receptionist session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserTypeKey, session.UserType.String()),
		)
		return nil, exceptions.ErrNotAuthorized(nil, decision.RedirectTo)
	}

	sessionContext.SetAssignedDoctorID(ctx, strings.TrimSpace(request.AssignedDoctorID))
	session = sessionContext.Snapshot()

	uc.Log.Info("authUsecase.SetAssignment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("assigned", session.AssignedDoctorID != ""),
	)
	return &responses.Login{
		RedirectTo: guards.HomePath(session),
		Session:    utils.BuildSessionResponse(session),
	}, nil
}

// publish is best effort; session events never fail the request that caused them.
func (uc *authUsecase) publish(ctx context.Context, sessionContext contracts.SessionContext, eventType models.SessionEventType, session models.Session) {
	if uc.EventPublisher == nil {
		return
	}
	event := models.SessionEvent{
		Type:             eventType,
		BrowserSessionID: sessionContext.Namespace(),
		UserType:         session.UserType,
		UserID:           session.UserID,
		OccurredAt:       uc.now().UTC(),
	}
	err := uc.EventPublisher.Publish(ctx, event)
	if err != nil {
		uc.Log.Warn("authUsecase.publish session event failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventTypeKey, string(eventType)),
			zap.Error(err),
		)
	}
}
