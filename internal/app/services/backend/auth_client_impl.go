package backend

import (
	"context"
	"fmt"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/dto/responses"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type authClient struct {
	Client *resty.Client
	Log    *zap.Logger
}

func NewAuthClient(client *resty.Client, logger *zap.Logger) contracts.AuthClient {
	return &authClient{
		Client: client,
		Log:    logger,
	}
}

func (c *authClient) Login(ctx context.Context, email, password, userType string) (*responses.NormalizedLogin, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("authClient.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserTypeKey, userType),
	)

	endpoint := fmt.Sprintf(endpointLogin, userType)
	resp, err := newRequest(ctx, c.Client).
		SetBody(map[string]string{"email": email, "password": password}).
		Post(endpoint)
	if err != nil {
		c.Log.Error("authClient.Login error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err, endpoint)
	}

	if resp.IsError() {
		message := backendMessage(resp.String())
		c.Log.Warn("authClient.Login rejected by backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode()),
		)
		if message == "" {
			message = constvars.ErrClientInvalidEmailOrPassword
		}
		return nil, exceptions.ErrAuthFailed(nil, "login", resp.StatusCode(), message)
	}

	normalized, err := normalizeLogin(resp.String(), userType)
	if err != nil {
		c.Log.Error("authClient.Login error normalizing response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("authClient.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserTypeKey, userType),
	)
	return normalized, nil
}

// normalizeLogin maps every role's login response onto one shape. Receptionist
// responses nest the profile under "receptionist".
func normalizeLogin(body, userType string) (*responses.NormalizedLogin, error) {
	root := payload(body)
	normalized := &responses.NormalizedLogin{
		AccessToken:  firstString(root, "accessToken", "token"),
		RefreshToken: firstString(root, "refreshToken"),
	}

	switch userType {
	case constvars.UserTypeReceptionist:
		receptionist := root.Get("receptionist")
		normalized.FirstName = firstString(receptionist, "firstName")
		normalized.LastName = firstString(receptionist, "lastName")
		normalized.ProfilePictureURL = firstString(receptionist, "profilePictureUrl", "profilePicture")
		normalized.ReceptionistID = firstString(receptionist, "receptionistId", "_id", "id")
		normalized.AssignedDoctorID = firstString(receptionist, "assignedDoctorId", "assignedDoctor._id", "assignedDoctor")
		if normalized.ReceptionistID == "" {
			normalized.ReceptionistID = firstString(root, "receptionistId")
		}
	case constvars.UserTypeDoctor:
		normalized.FirstName = firstString(root, "firstName")
		normalized.LastName = firstString(root, "lastName")
		normalized.ProfilePictureURL = firstString(root, "profilePictureUrl")
		normalized.DoctorID = firstString(root, "doctorId")
	case constvars.UserTypePatient:
		normalized.FirstName = firstString(root, "firstName")
		normalized.LastName = firstString(root, "lastName")
		normalized.ProfilePictureURL = firstString(root, "profilePictureUrl")
		normalized.PatientID = firstString(root, "patientId")
	}

	roleID := normalized.DoctorID + normalized.PatientID + normalized.ReceptionistID
	if normalized.AccessToken == "" || roleID == "" {
		return nil, exceptions.ErrUnexpectedBackendResponse(nil, "login")
	}
	return normalized, nil
}

func (c *authClient) RegisterDoctor(ctx context.Context, form *requests.RegisterForm) error {
	return c.register(ctx, constvars.UserTypeDoctor, form)
}

func (c *authClient) RegisterPatient(ctx context.Context, form *requests.RegisterForm) error {
	return c.register(ctx, constvars.UserTypePatient, form)
}

func (c *authClient) RegisterReceptionist(ctx context.Context, form *requests.RegisterForm) error {
	return c.register(ctx, constvars.UserTypeReceptionist, form)
}

func (c *authClient) register(ctx context.Context, userType string, form *requests.RegisterForm) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("authClient.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserTypeKey, userType),
	)

	fields := make(map[string]string, len(form.Fields))
	for key, value := range form.Fields {
		if key == "confirmPassword" {
			continue
		}
		fields[key] = value
	}

	endpoint := fmt.Sprintf(endpointRegister, userType)
	request := newRequest(ctx, c.Client).SetMultipartFormData(fields)
	if picture := form.ProfilePicture; picture != nil {
		request.SetMultipartField(registrationPictureKey, picture.FileName, picture.ContentType, picture.Content)
	}

	resp, err := request.Post(endpoint)
	if err != nil {
		c.Log.Error("authClient.Register error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err, endpoint)
	}

	if resp.IsError() {
		message := backendMessage(resp.String())
		if message == "" {
			message = constvars.ErrClientRegistrationFailed
		}
		c.Log.Warn("authClient.Register rejected by backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode()),
		)
		return exceptions.ErrAuthFailed(nil, "register", resp.StatusCode(), message)
	}

	c.Log.Info("authClient.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserTypeKey, userType),
	)
	return nil
}

func (c *authClient) RequestPasswordReset(ctx context.Context, email, userType string) error {
	return c.oneShot(ctx, "request-reset", newRequest(ctx, c.Client).
		SetBody(map[string]string{"email": email, "userType": userType}), resty.MethodPost, endpointRequestReset)
}

func (c *authClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.oneShot(ctx, "reset-password", newRequest(ctx, c.Client).
		SetBody(map[string]string{"token": token, "newPassword": newPassword}), resty.MethodPost, endpointResetPassword)
}

func (c *authClient) VerifyAccount(ctx context.Context, token string) error {
	return c.oneShot(ctx, "verify-account", newRequest(ctx, c.Client).
		SetQueryParam("token", token), resty.MethodGet, endpointActivate)
}

func (c *authClient) oneShot(ctx context.Context, operation string, request *resty.Request, method, endpoint string) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("authClient."+operation+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	resp, err := request.Execute(method, endpoint)
	if err != nil {
		c.Log.Error("authClient."+operation+" error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err, endpoint)
	}

	if resp.IsError() {
		c.Log.Warn("authClient."+operation+" rejected by backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode()),
		)
		return exceptions.ErrAuthFailed(nil, operation, resp.StatusCode(), backendMessage(resp.String()))
	}

	c.Log.Info("authClient."+operation+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (c *authClient) RefreshToken(ctx context.Context, refreshToken string) (*responses.RefreshedTokens, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("authClient.RefreshToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	resp, err := newRequest(ctx, c.Client).
		SetBody(map[string]string{"refreshToken": refreshToken}).
		Post(endpointRefreshToken)
	if err != nil {
		c.Log.Error("authClient.RefreshToken error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err, endpointRefreshToken)
	}

	if resp.IsError() {
		c.Log.Warn("authClient.RefreshToken rejected by backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode()),
		)
		return nil, exceptions.ErrAuthFailed(nil, "refresh-token", resp.StatusCode(), backendMessage(resp.String()))
	}

	root := payload(resp.String())
	tokens := &responses.RefreshedTokens{
		AccessToken:  firstString(root, "accessToken", "token"),
		RefreshToken: firstString(root, "refreshToken"),
	}
	if tokens.AccessToken == "" {
		return nil, exceptions.ErrUnexpectedBackendResponse(nil, "refresh-token")
	}

	c.Log.Info("authClient.RefreshToken succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("refresh_token_rotated", tokens.RefreshToken != ""),
	)
	return tokens, nil
}

func (c *authClient) Logout(ctx context.Context, accessToken string) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("authClient.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	resp, err := authorized(newRequest(ctx, c.Client), accessToken).Post(endpointLogout)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err, endpointLogout)
	}
	if resp.IsError() {
		return exceptions.ErrAuthFailed(nil, "logout", resp.StatusCode(), backendMessage(resp.String()))
	}

	c.Log.Info("authClient.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}
