package controllers

import (
	"medportal-service/internal/app/delivery/http/middlewares"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/dto/responses"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type PageController struct {
	Log *zap.Logger
}

func NewPageController(logger *zap.Logger) *PageController {
	return &PageController{Log: logger}
}

// Describe answers a navigation the route guard allowed.
func (ctrl *PageController) Describe(w http.ResponseWriter, r *http.Request) {
	route, ok := middlewares.RouteFrom(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrPageNotFound(nil, r.URL.Path))
		return
	}
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PageAllowedMessage, responses.PageDescriptor{
		Page:    route.Page,
		Path:    r.URL.Path,
		Session: utils.BuildSessionResponse(sessionContext.Snapshot()),
	})
}
