package adaptor

import (
	"errors"
	"net/http"

	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Movie    *MovieHandler
	Review   *ReviewHandler
	Favorite *FavoriteHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Movie:    NewMovieHandler(service.Movie, service.Review, log),
		Review:   NewReviewHandler(service.Review, log),
		Favorite: NewFavoriteHandler(service.Favorite, log),
	}
}

// handleServiceError maps service errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, verr.Message, verr.Fields)

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "You can only modify your own reviews")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid username or password")

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
