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
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type feedClient struct {
	Client *resty.Client
	Log    *zap.Logger
}

func NewFeedClient(client *resty.Client, logger *zap.Logger) contracts.FeedClient {
	return &feedClient{
		Client: client,
		Log:    logger,
	}
}

func (c *feedClient) GetFeed(ctx context.Context, accessToken string, pagination *requests.Pagination) (*responses.Feed, error) {
	request := authorized(newRequest(ctx, c.Client), accessToken).
		SetQueryParams(map[string]string{
			"page":      strconv.Itoa(pagination.Page),
			"page_size": strconv.Itoa(pagination.PageSize),
		})

	body, err := c.do(ctx, "GetFeed", request, resty.MethodGet, endpointFeed)
	if err != nil {
		return nil, err
	}

	root := payload(string(body))
	feed := &responses.Feed{Posts: json.RawMessage(`[]`)}
	if posts := root.Get("posts"); posts.IsArray() {
		feed.Posts = json.RawMessage(posts.Raw)
	} else if root.IsArray() {
		feed.Posts = json.RawMessage(root.Raw)
	}
	if total := root.Get("total"); total.Exists() {
		feed.Pagination = utils.BuildPaginationResponse(int(total.Int()), pagination.Page, pagination.PageSize, "/api/v1/feed")
	}
	return feed, nil
}

func (c *feedClient) GetPost(ctx context.Context, accessToken, postID string) (json.RawMessage, error) {
	request := authorized(newRequest(ctx, c.Client), accessToken)
	return c.doRaw(ctx, "GetPost", request, resty.MethodGet, fmt.Sprintf(endpointFeedPost, postID))
}

func (c *feedClient) CreatePost(ctx context.Context, accessToken string, post *requests.CreatePost) (json.RawMessage, error) {
	request := authorized(newRequest(ctx, c.Client), accessToken).SetBody(post)
	return c.doRaw(ctx, "CreatePost", request, resty.MethodPost, endpointFeed)
}

func (c *feedClient) LikePost(ctx context.Context, accessToken, postID string) (json.RawMessage, error) {
	request := authorized(newRequest(ctx, c.Client), accessToken)
	return c.doRaw(ctx, "LikePost", request, resty.MethodPost, fmt.Sprintf(endpointFeedPostLike, postID))
}

func (c *feedClient) GetComments(ctx context.Context, accessToken, postID string) (json.RawMessage, error) {
	request := authorized(newRequest(ctx, c.Client), accessToken)
	return c.doRaw(ctx, "GetComments", request, resty.MethodGet, fmt.Sprintf(endpointFeedComments, postID))
}

func (c *feedClient) CreateComment(ctx context.Context, accessToken, postID string, comment *requests.CreateComment) (json.RawMessage, error) {
	request := authorized(newRequest(ctx, c.Client), accessToken).SetBody(comment)
	return c.doRaw(ctx, "CreateComment", request, resty.MethodPost, fmt.Sprintf(endpointFeedComments, postID))
}

// doRaw returns the response payload, unwrapping a {"data": ...} envelope.
func (c *feedClient) doRaw(ctx context.Context, operation string, request *resty.Request, method, endpoint string) (json.RawMessage, error) {
	body, err := c.do(ctx, operation, request, method, endpoint)
	if err != nil {
		return nil, err
	}
	root := payload(string(body))
	if root.Raw == "" {
		return json.RawMessage(`null`), nil
	}
	return json.RawMessage(root.Raw), nil
}

func (c *feedClient) do(ctx context.Context, operation string, request *resty.Request, method, endpoint string) ([]byte, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("feedClient."+operation+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEndpointKey, endpoint),
	)

	resp, err := request.Execute(method, endpoint)
	if err != nil {
		c.Log.Error("feedClient."+operation+" error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err, endpoint)
	}

	if resp.IsError() {
		c.Log.Warn("feedClient."+operation+" rejected by backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode()),
		)
		return nil, exceptions.ErrAuthFailed(nil, operation, resp.StatusCode(), backendMessage(resp.String()))
	}

	c.Log.Info("feedClient."+operation+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return resp.Body(), nil
}
