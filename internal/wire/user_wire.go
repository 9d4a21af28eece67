package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser mounts the signed-in user's own resources under /api/user.
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	favoriteHandler *adaptor.FavoriteHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/user", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/profile", userHandler.GetProfile)
		r.Get("/favorites", favoriteHandler.ListFavorites)
	})
}
