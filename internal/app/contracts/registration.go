package contracts

import (
	"context"
	"io"
	"medportal-service/internal/pkg/dto/responses"
)

type RegistrationUsecase interface {
	State(ctx context.Context, browserSessionID, userType string) (*responses.WizardState, error)
	Next(ctx context.Context, browserSessionID, userType string, fields map[string]string) (*responses.WizardState, error)
	Back(ctx context.Context, browserSessionID, userType string) (*responses.WizardState, error)
	UploadPhoto(ctx context.Context, browserSessionID, userType string, photo *StagedUpload) (*responses.WizardState, error)
	Submit(ctx context.Context, browserSessionID, userType string) (*responses.WizardState, error)
	Reset(ctx context.Context, browserSessionID, userType string) error
}

type StagedUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}
