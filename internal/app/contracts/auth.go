package contracts

import (
	"context"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/dto/responses"
)

type AuthClient interface {
	Login(ctx context.Context, email, password, userType string) (*responses.NormalizedLogin, error)
	RegisterDoctor(ctx context.Context, form *requests.RegisterForm) error
	RegisterPatient(ctx context.Context, form *requests.RegisterForm) error
	RegisterReceptionist(ctx context.Context, form *requests.RegisterForm) error
	RequestPasswordReset(ctx context.Context, email, userType string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyAccount(ctx context.Context, token string) error
	RefreshToken(ctx context.Context, refreshToken string) (*responses.RefreshedTokens, error)
	Logout(ctx context.Context, accessToken string) error
}

type AuthUsecase interface {
	Login(ctx context.Context, sessionContext SessionContext, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, sessionContext SessionContext) error
	Refresh(ctx context.Context, sessionContext SessionContext) (*responses.Session, error)
	ForgotPassword(ctx context.Context, request *requests.ForgotPassword) error
	ResetPassword(ctx context.Context, request *requests.ResetPassword) error
	VerifyAccount(ctx context.Context, request *requests.VerifyAccount) error
	SetAssignment(ctx context.Context, sessionContext SessionContext, request *requests.SessionAssignment) (*responses.Login, error)
}
