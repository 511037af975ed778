package middlewares

import (
	"context"
	"medportal-service/internal/app/services/core/guards"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// Guard evaluates the route guard for a page navigation. Denied navigations
// are answered with a redirect; allowed ones continue with the matched route
// in the context. Paths missing from the route table are guarded with the
// table's fallback capability and reach next unmatched.
func (m *Middlewares) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionContext, ok := SessionContextFrom(r.Context())
		if !ok {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerProcess(nil))
			return
		}

		route, matched := m.RouteTable.Match(r.URL.Path)
		decision := guards.EvaluateContext(r.Context(), sessionContext, route.Capability)
		if !decision.Allow {
			m.Log.Info("Middlewares.Guard redirecting navigation",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingPathKey, r.URL.Path),
				zap.String(constvars.LoggingCapabilityKey, string(route.Capability)),
				zap.String(constvars.LoggingRedirectKey, decision.RedirectTo),
			)
			utils.BuildRedirectResponse(w, decision.RedirectTo)
			return
		}

		ctx := r.Context()
		if matched {
			ctx = context.WithValue(ctx, constvars.CONTEXT_PAGE_ROUTE_KEY, route)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RouteFrom returns the page route matched by Guard.
func RouteFrom(ctx context.Context) (guards.Route, bool) {
	route, ok := ctx.Value(constvars.CONTEXT_PAGE_ROUTE_KEY).(guards.Route)
	return route, ok
}
