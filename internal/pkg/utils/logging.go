package utils

import (
	"context"
	"medportal-service/internal/pkg/constvars"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetBrowserSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(constvars.CONTEXT_BROWSER_SESSION_ID_KEY).(string); ok {
		return sessionID
	}
	return ""
}
