package routers

import (
	"medportal-service/internal/app/config"
	"medportal-service/internal/app/delivery/http/controllers"
	"medportal-service/internal/app/delivery/http/middlewares"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Auth         *controllers.AuthController
	Registration *controllers.RegistrationController
	Feed         *controllers.FeedController
	Page         *controllers.PageController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	loginLimiter *middlewares.RateLimiter,
	handlers Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.GlobalRateLimit())
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.BodyLimit)
	router.Use(middlewares.BrowserSession)

	endpointPrefix := "/" + strings.Trim(internalConfig.App.EndpointPrefix, "/")
	versionPrefix := "/" + strings.Trim(internalConfig.App.Version, "/")

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, loginLimiter, handlers.Auth)
			})

			r.Route("/session", func(r chi.Router) {
				attachSessionRoutes(r, handlers.Auth)
			})

			r.Route("/register/{role}", func(r chi.Router) {
				attachRegistrationRoutes(r, handlers.Registration)
			})

			r.Route("/feed", func(r chi.Router) {
				attachFeedRoutes(r, handlers.Feed)
			})
		})
	})

	// Everything outside the API is a page navigation.
	router.With(middlewares.Guard).Get("/*", handlers.Page.Describe)
}
