package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	reviews usecase.ReviewService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, reviews usecase.ReviewService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		reviews: reviews,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	_, topRated := query["top_rated"]
	list := h.service.ListMovies(r.Context(), request.MovieListQuery{
		Query:    strings.TrimSpace(query.Get("q")),
		TopRated: topRated,
		Genre:    strings.TrimSpace(query.Get("genre")),
		Page:     utils.ParsePage(query.Get("page")),
	}, utils.GetViewerFromContext(r.Context()))

	utils.ResponseSuccess(w, "success", list)
}

// GetMovieDetail handles GET /api/movies/{imdbID}
func (h *MovieHandler) GetMovieDetail(w http.ResponseWriter, r *http.Request) {
	imdbID := chi.URLParam(r, "imdbID")

	detail, err := h.service.GetMovieDetail(r.Context(), imdbID, utils.GetViewerFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie detail")
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

// PostReview handles POST /api/movies/{imdbID}/reviews
func (h *MovieHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	req.ImdbID = chi.URLParam(r, "imdbID")

	detail, err := h.reviews.SubmitReview(r.Context(), userID, &req)

	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		h.log.Warn("Post review rejected",
			zap.String("imdb_id", req.ImdbID),
			zap.String("reason", verr.Message),
		)
		utils.ResponseInvalidForm(w, verr.Message, reviewFormState(&req, verr), verr.Fields)
		return
	}
	if err != nil {
		handleServiceError(w, h.log, err, "post review")
		return
	}

	utils.ResponseCreated(w, "Review saved", detail)
}
