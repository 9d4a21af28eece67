package usecase

import (
	"context"
	"fmt"

	"movie-review/internal/data/repository"
	"movie-review/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrNotFound)
	}

	reviews, err := us.repo.Review.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	favorites, err := us.repo.Favorite.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	return &response.UserResponse{
		ID:            user.ID.String(),
		Username:      user.Username,
		Email:         user.Email,
		ReviewCount:   reviews,
		FavoriteCount: favorites,
		CreatedAt:     user.CreatedAt,
	}, nil
}
