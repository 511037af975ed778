package routers

import (
	"medportal-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachFeedRoutes(router chi.Router, feedController *controllers.FeedController) {
	router.Get("/", feedController.GetFeed)
	router.Post("/", feedController.CreatePost)
	router.Get("/posts/{postId}", feedController.GetPost)
	router.Post("/posts/{postId}/like", feedController.LikePost)
	router.Get("/posts/{postId}/comments", feedController.GetComments)
	router.Post("/posts/{postId}/comments", feedController.CreateComment)
}
