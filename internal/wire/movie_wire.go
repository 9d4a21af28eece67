package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/movies", func(r chi.Router) {
		// Anonymous viewers get the list too, just without personal flags.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalSession(repo.Session, log))

			r.Get("/", movieHandler.GetMovies)
			r.Get("/{imdbID}", movieHandler.GetMovieDetail)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(repo.Session, log))

			r.Post("/{imdbID}/reviews", movieHandler.PostReview)
		})
	})
}
