package controllers

import (
	"context"
	"errors"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/delivery/http/middlewares"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return defaultRequestTimeout
	}
	// The backend call fails on its own timeout before the request deadline.
	return time.Duration(seconds)*time.Second + 2*time.Second
}

func requireSessionContext(log *zap.Logger, w http.ResponseWriter, r *http.Request) (contracts.SessionContext, bool) {
	sessionContext, ok := middlewares.SessionContextFrom(r.Context())
	if !ok {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerProcess(errors.New("request reached controller without a browser session")))
		return nil, false
	}
	return sessionContext, true
}

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
