package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FavoriteService interface {
	ToggleFavorite(ctx context.Context, userID uuid.UUID, req *request.ToggleFavoriteRequest) (*response.ToggleFavoriteResponse, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]response.FavoriteResponse, error)
}

type favoriteService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFavoriteService(repo *repository.Repository, log *zap.Logger) FavoriteService {
	return &favoriteService{
		repo: repo,
		log:  log.With(zap.String("service", "favorite")),
	}
}

func (s *favoriteService) ToggleFavorite(ctx context.Context, userID uuid.UUID, req *request.ToggleFavoriteRequest) (*response.ToggleFavoriteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Toggle favorite validation failed", zap.Any("errors", errs))
		return nil, newValidationError(utils.FormatValidationErrors(errs), errs)
	}

	favorite := &entity.Favorite{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:     userID,
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
	}
	if poster := strings.TrimSpace(req.PosterURL); poster != "" {
		favorite.PosterURL = &poster
	}

	favorited, err := s.repo.Favorite.Toggle(ctx, favorite)
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	s.log.Info("Favorite toggled",
		zap.String("user_id", userID.String()),
		zap.String("movie_id", req.MovieID),
		zap.Bool("is_favorite", favorited),
	)

	return &response.ToggleFavoriteResponse{
		MovieID:    req.MovieID,
		IsFavorite: favorited,
	}, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]response.FavoriteResponse, error) {
	favorites, err := s.repo.Favorite.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	out := make([]response.FavoriteResponse, len(favorites))
	for i, f := range favorites {
		out[i] = response.FavoriteToResponse(f)
	}

	return out, nil
}
