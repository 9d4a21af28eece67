package wire

import (
	"net/http"

	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/internal/usecase"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router.
func Wiring(
	repo *repository.Repository,
	catalog usecase.CatalogClient,
	rand usecase.Randomizer,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, catalog, rand, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, repo, logger),
	}
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, handler.Favorite, repo, logger)
	wireMovie(r, handler.Movie, repo, logger)
	wireReview(r, handler.Review, repo, logger)
	wireFavorite(r, handler.Favorite, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
