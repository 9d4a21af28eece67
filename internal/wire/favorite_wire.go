package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFavorite(
	r chi.Router,
	favoriteHandler *adaptor.FavoriteHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Listing lives with the other per-user routes in wireUser.
	r.With(middleware.AuthSession(repo.Session, log)).Post("/api/favorites/toggle", favoriteHandler.ToggleFavorite)
}
