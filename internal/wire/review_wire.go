package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Get("/api/reviews", reviewHandler.ListReviews)
	r.Get("/api/reviews/{id}", reviewHandler.GetReview)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/api/reviews/create", reviewHandler.ReviewForm)
		r.Post("/api/reviews/create", reviewHandler.CreateReview)

		// owner only, checked by the service
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}
