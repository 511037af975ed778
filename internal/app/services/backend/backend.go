package backend

import (
	"context"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/utils"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

const (
	endpointLogin          = "/api/v1/auth/login/%s"
	endpointRegister       = "/api/v1/auth/register/%s"
	endpointRequestReset   = "/api/v1/request-reset"
	endpointResetPassword  = "/api/v1/reset-password"
	endpointActivate       = "/activate_account"
	endpointRefreshToken   = "/api/v1/refresh-token"
	endpointLogout         = "/api/v1/auth/logout"
	endpointFeed           = "/api/v1/feed"
	endpointFeedPost       = "/api/v1/feed/posts/%s"
	endpointFeedPostLike   = "/api/v1/feed/posts/%s/like"
	endpointFeedComments   = "/api/v1/feed/posts/%s/comments"
	registrationPictureKey = "profilePicture"
)

// NewRestyClient builds the shared backend HTTP client.
func NewRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader(constvars.HeaderAccept, constvars.MIMEApplicationJSON).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
}

func newRequest(ctx context.Context, client *resty.Client) *resty.Request {
	request := client.R().SetContext(ctx)
	if requestID := utils.GetRequestID(ctx); requestID != "" {
		request.SetHeader(constvars.HeaderXRequestID, requestID)
	}
	return request
}

func authorized(request *resty.Request, accessToken string) *resty.Request {
	if accessToken != "" {
		request.SetAuthToken(accessToken)
	}
	return request
}

// payload unwraps an optional {"data": ...} envelope.
func payload(body string) gjson.Result {
	root := gjson.Parse(body)
	if data := root.Get("data"); data.IsObject() || data.IsArray() {
		return data
	}
	return root
}

// backendMessage extracts the first field level error, then the generic message.
func backendMessage(body string) string {
	root := gjson.Parse(body)

	var fieldMessage string
	root.Get("errors").ForEach(func(_, value gjson.Result) bool {
		switch {
		case value.Type == gjson.String:
			fieldMessage = value.String()
		case value.IsObject():
			fieldMessage = firstString(value, "msg", "message")
		case value.IsArray():
			fieldMessage = value.Get("0").String()
		}
		return fieldMessage == ""
	})
	if fieldMessage != "" {
		return fieldMessage
	}

	return firstString(root, "message", "error", "msg")
}

func firstString(result gjson.Result, paths ...string) string {
	for _, path := range paths {
		if value := result.Get(path); value.Exists() && value.Type == gjson.String && value.String() != "" {
			return value.String()
		}
	}
	return ""
}
