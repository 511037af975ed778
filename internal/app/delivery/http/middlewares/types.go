package middlewares

import (
	"medportal-service/internal/app/config"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/services/core/guards"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	InternalConfig  *config.InternalConfig
	SessionRegistry contracts.SessionRegistry
	RouteTable      *guards.RouteTable
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, sessionRegistry contracts.SessionRegistry, routeTable *guards.RouteTable) *Middlewares {
	return &Middlewares{
		Log:             logger,
		InternalConfig:  internalConfig,
		SessionRegistry: sessionRegistry,
		RouteTable:      routeTable,
	}
}
