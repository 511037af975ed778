package routers

import (
	"medportal-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachRegistrationRoutes(router chi.Router, registrationController *controllers.RegistrationController) {
	router.Get("/", registrationController.State)
	router.Delete("/", registrationController.Reset)
	router.Post("/next", registrationController.Next)
	router.Post("/back", registrationController.Back)
	router.Post("/photo", registrationController.UploadPhoto)
	router.Post("/submit", registrationController.Submit)
}
