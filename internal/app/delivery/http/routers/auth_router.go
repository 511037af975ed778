package routers

import (
	"medportal-service/internal/app/delivery/http/controllers"
	"medportal-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, loginLimiter *middlewares.RateLimiter, authController *controllers.AuthController) {
	router.With(loginLimiter.Limit).Post("/login", authController.Login)
	router.Post("/logout", authController.Logout)
	router.Post("/refresh-token", authController.RefreshToken)
	router.Post("/forgot-password", authController.ForgotPassword)
	router.Post("/reset-password", authController.ResetPassword)
	router.Get("/activate", authController.VerifyAccount)
}

func attachSessionRoutes(router chi.Router, authController *controllers.AuthController) {
	router.Get("/", authController.Session)
	router.Get("/stream", authController.SessionStream)
	router.Post("/assignment", authController.SetAssignment)
}
