package repository

import (
	"errors"

	"movie-review/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound reports a write that matched no row.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Movie    MovieRepository
	Review   ReviewRepository
	Favorite FavoriteRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Review:   NewReviewRepository(db, log),
		Favorite: NewFavoriteRepository(db, log),
	}
}
