package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type FavoriteHandler struct {
	service usecase.FavoriteService
	log     *zap.Logger
}

func NewFavoriteHandler(service usecase.FavoriteService, log *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		log:     log.With(zap.String("handler", "favorite")),
	}
}

// ToggleFavorite handles POST /api/favorites/toggle
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ToggleFavoriteRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.ToggleFavorite(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "toggle favorite")
		return
	}

	message := "Removed from favorites"
	if result.IsFavorite {
		message = "Added to favorites"
	}
	utils.ResponseSuccess(w, message, result)
}

// ListFavorites handles GET /api/user/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	favorites, err := h.service.ListFavorites(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list favorites")
		return
	}

	utils.ResponseSuccess(w, "success", favorites)
}
