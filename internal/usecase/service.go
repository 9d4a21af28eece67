package usecase

import (
	"movie-review/internal/data/repository"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Movie    MovieService
	Review   ReviewService
	Favorite FavoriteService
}

func NewService(
	repo *repository.Repository,
	catalog CatalogClient,
	rand Randomizer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	movies := NewMovieService(repo, catalog, rand, config.Discovery, log)

	return &Service{
		Auth:     NewAuthService(repo, config.Session, log),
		User:     NewUserService(repo, log),
		Movie:    movies,
		Review:   NewReviewService(repo, catalog, movies, log),
		Favorite: NewFavoriteService(repo, log),
	}
}
