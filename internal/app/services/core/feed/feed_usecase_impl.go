package feed

import (
	"context"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/services/core/guards"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/dto/responses"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type feedUsecase struct {
	FeedClient contracts.FeedClient
	Log        *zap.Logger
}

func NewFeedUsecase(feedClient contracts.FeedClient, logger *zap.Logger) contracts.FeedUsecase {
	return &feedUsecase{
		FeedClient: feedClient,
		Log:        logger,
	}
}

// accessToken returns the session's bearer token once the session holds capability.
func (uc *feedUsecase) accessToken(ctx context.Context, sessionContext contracts.SessionContext, capability guards.Capability, operation string) (string, error) {
	session := sessionContext.Snapshot()
	decision := guards.Evaluate(session, capability)
	if decision.Allow {
		return session.AccessToken, nil
	}

	uc.Log.Warn("feedUsecase."+operation+" denied",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingCapabilityKey, string(capability)),
		zap.String(constvars.LoggingRedirectKey, decision.RedirectTo),
	)
	if !session.IsLoggedIn {
		return "", exceptions.ErrTokenMissing(nil)
	}
	return "", exceptions.ErrNotAuthorized(nil, decision.RedirectTo)
}

func (uc *feedUsecase) GetFeed(ctx context.Context, sessionContext contracts.SessionContext, pagination *requests.Pagination) (*responses.Feed, error) {
	token, err := uc.accessToken(ctx, sessionContext, guards.CapabilityAuthenticated, "GetFeed")
	if err != nil {
		return nil, err
	}
	return uc.FeedClient.GetFeed(ctx, token, pagination)
}

// GetPost is public; the token is forwarded when the session has one.
func (uc *feedUsecase) GetPost(ctx context.Context, sessionContext contracts.SessionContext, postID string) (json.RawMessage, error) {
	return uc.FeedClient.GetPost(ctx, sessionContext.Snapshot().AccessToken, postID)
}

func (uc *feedUsecase) CreatePost(ctx context.Context, sessionContext contracts.SessionContext, request *requests.CreatePost) (json.RawMessage, error) {
	token, err := uc.accessToken(ctx, sessionContext, guards.CapabilityDoctor, "CreatePost")
	if err != nil {
		return nil, err
	}

	post, err := uc.FeedClient.CreatePost(ctx, token, request)
	if err != nil {
		uc.Log.Error("feedUsecase.CreatePost error from feed client",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}
	return post, nil
}

func (uc *feedUsecase) LikePost(ctx context.Context, sessionContext contracts.SessionContext, postID string) (json.RawMessage, error) {
	token, err := uc.accessToken(ctx, sessionContext, guards.CapabilityAuthenticated, "LikePost")
	if err != nil {
		return nil, err
	}
	return uc.FeedClient.LikePost(ctx, token, postID)
}

func (uc *feedUsecase) GetComments(ctx context.Context, sessionContext contracts.SessionContext, postID string) (json.RawMessage, error) {
	token, err := uc.accessToken(ctx, sessionContext, guards.CapabilityAuthenticated, "GetComments")
	if err != nil {
		return nil, err
	}
	return uc.FeedClient.GetComments(ctx, token, postID)
}

func (uc *feedUsecase) CreateComment(ctx context.Context, sessionContext contracts.SessionContext, postID string, request *requests.CreateComment) (json.RawMessage, error) {
	token, err := uc.accessToken(ctx, sessionContext, guards.CapabilityAuthenticated, "CreateComment")
	if err != nil {
		return nil, err
	}
	return uc.FeedClient.CreateComment(ctx, token, postID, request)
}
