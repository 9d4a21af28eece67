package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-review/internal/data/catalog"
	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	InvalidRatingMessage = "Invalid rating. Please provide a number between 1 and 10."
	MissingFieldsMessage = "All fields are required."
	EmptyReviewMessage   = "Review content cannot be empty."
)

type ReviewService interface {
	// SubmitReview stores a review and returns the refreshed movie detail.
	SubmitReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.MovieDetailResponse, error)
	// ReviewSearch backs the review form's movie picker.
	ReviewSearch(ctx context.Context, query string) []catalog.Entry

	ListReviews(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReview(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID string, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID string, userID uuid.UUID) error
}

type reviewService struct {
	repo    *repository.Repository
	catalog CatalogClient
	movies  MovieService
	log     *zap.Logger
}

func NewReviewService(
	repo *repository.Repository,
	catalog CatalogClient,
	movies MovieService,
	log *zap.Logger,
) ReviewService {
	return &reviewService{
		repo:    repo,
		catalog: catalog,
		movies:  movies,
		log:     log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.MovieDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit review validation failed", zap.Any("errors", errs))
		return nil, newValidationError(MissingFieldsMessage, errs)
	}

	rating, ok := request.ParseRating(req.Rating)
	if !ok {
		s.log.Warn("Submit review rejected rating",
			zap.String("rating", string(req.Rating)),
			zap.String("imdb_id", req.ImdbID),
		)
		return nil, newValidationError(InvalidRatingMessage, map[string]string{"rating": InvalidRatingMessage})
	}

	movie, created, err := s.repo.Movie.GetOrCreate(ctx, req.ImdbID, req.Title)
	if err != nil {
		return nil, fmt.Errorf("get or create movie %s: %w", req.ImdbID, err)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		MovieID: &movie.ImdbID,
		Rating:  rating,
		Content: req.Content,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("imdb_id", movie.ImdbID),
		zap.Int("rating", rating),
		zap.Bool("movie_created", created),
	)

	return s.movies.GetMovieDetail(ctx, movie.ImdbID, &userID)
}

func (s *reviewService) ReviewSearch(ctx context.Context, query string) []catalog.Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return []catalog.Entry{}
	}

	resp, ok := s.catalog.Search(ctx, map[string]string{"s": query, "type": "movie"})
	if !ok || resp == nil || !resp.OK() {
		return []catalog.Entry{}
	}

	return resp.Search
}

func (s *reviewService) ListReviews(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	reviews, err := s.repo.Review.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	out := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = s.toResponse(ctx, review)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	return response.NewPaginatedResponse(out, page, limit, total), nil
}

func (s *reviewService) GetReview(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.find(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	review, err := s.find(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != userID {
		s.log.Warn("Review update by non-owner",
			zap.String("review_id", reviewID),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("review %s belongs to another user: %w", reviewID, ErrForbidden)
	}

	if req.Rating != nil {
		rating, ok := request.ParseRating(*req.Rating)
		if !ok {
			return nil, newValidationError(InvalidRatingMessage, map[string]string{"rating": InvalidRatingMessage})
		}
		review.Rating = rating
	}

	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, newValidationError(EmptyReviewMessage, map[string]string{"content": EmptyReviewMessage})
		}
		review.Content = *req.Content
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)

	resp := s.toResponse(ctx, review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, userID uuid.UUID) error {
	review, err := s.find(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		s.log.Warn("Review delete by non-owner",
			zap.String("review_id", reviewID),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("review %s belongs to another user: %w", reviewID, ErrForbidden)
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
		}
		return fmt.Errorf("delete review: %w", err)
	}

	return nil
}

func (s *reviewService) find(ctx context.Context, reviewID string) (*entity.Review, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	return review, nil
}

func (s *reviewService) toResponse(ctx context.Context, review *entity.Review) response.ReviewResponse {
	username := ""
	if user, err := s.repo.User.FindByID(ctx, review.UserID); err == nil && user != nil {
		username = user.Username
	}
	return response.ReviewToResponse(review, username)
}
