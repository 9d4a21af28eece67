package adaptor

import (
	"errors"
	"net/http"

	"movie-review/internal/data/catalog"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// ReviewForm handles GET /api/reviews/create?q=
func (h *ReviewHandler) ReviewForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	utils.ResponseSuccess(w, "success", response.ReviewFormResponse{
		SearchQuery:   q,
		SearchResults: h.service.ReviewSearch(r.Context(), q),
	})
}

// CreateReview handles POST /api/reviews/create?q=
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
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

	detail, err := h.service.SubmitReview(r.Context(), userID, &req)

	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		h.log.Warn("Create review rejected", zap.String("reason", verr.Message))
		q := r.URL.Query().Get("q")
		state := reviewFormState(&req, verr)
		state.SearchQuery = q
		state.SearchResults = h.service.ReviewSearch(r.Context(), q)
		utils.ResponseInvalidForm(w, verr.Message, state, verr.Fields)
		return
	}
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review saved", detail)
}

// ListReviews handles GET /api/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListReviews(r.Context(), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetReview handles GET /api/reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// UpdateReview handles PUT /api/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateReviewRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// reviewFormState is what the client redisplays after a rejected review post.
func reviewFormState(req *request.CreateReviewRequest, verr *usecase.ValidationError) response.ReviewFormResponse {
	return response.ReviewFormResponse{
		SearchResults: []catalog.Entry{},
		ErrorMessage:  verr.Message,
		ImdbID:        req.ImdbID,
		Title:         req.Title,
		Rating:        string(req.Rating),
		Content:       req.Content,
	}
}
