package contracts

import (
	"context"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
)

type FeedClient interface {
	GetFeed(ctx context.Context, accessToken string, pagination *requests.Pagination) (*responses.Feed, error)
	GetPost(ctx context.Context, accessToken, postID string) (json.RawMessage, error)
	CreatePost(ctx context.Context, accessToken string, request *requests.CreatePost) (json.RawMessage, error)
	LikePost(ctx context.Context, accessToken, postID string) (json.RawMessage, error)
	GetComments(ctx context.Context, accessToken, postID string) (json.RawMessage, error)
	CreateComment(ctx context.Context, accessToken, postID string, request *requests.CreateComment) (json.RawMessage, error)
}

type FeedUsecase interface {
	GetFeed(ctx context.Context, sessionContext SessionContext, pagination *requests.Pagination) (*responses.Feed, error)
	GetPost(ctx context.Context, sessionContext SessionContext, postID string) (json.RawMessage, error)
	CreatePost(ctx context.Context, sessionContext SessionContext, request *requests.CreatePost) (json.RawMessage, error)
	LikePost(ctx context.Context, sessionContext SessionContext, postID string) (json.RawMessage, error)
	GetComments(ctx context.Context, sessionContext SessionContext, postID string) (json.RawMessage, error)
	CreateComment(ctx context.Context, sessionContext SessionContext, postID string, request *requests.CreateComment) (json.RawMessage, error)
}
