package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Post("/api/register", authHandler.Register)
	r.Post(middleware.LoginPath, authHandler.Login)

	r.With(middleware.AuthSession(repo.Session, log)).Post("/api/logout", authHandler.Logout)
}
