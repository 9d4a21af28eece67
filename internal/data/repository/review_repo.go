package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error)
	CountAll(ctx context.Context) (int64, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Batch queries used to enrich catalog listings
	GetStatsByMovieIDs(ctx context.Context, movieIDs []string) (map[string]entity.ReviewStats, error)
	FindReviewedMovieIDs(ctx context.Context, userID uuid.UUID, movieIDs []string) (map[string]struct{}, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, user_id, movie_id, rating, content, created_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.MovieID,
		&review.Rating,
		&review.Content,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, movie_id, rating, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.MovieID,
		review.Rating,
		review.Content,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.Stringp("movie_id", review.MovieID),
		)
		return fmt.Errorf("create review by user %s: %w", review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE movie_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("find reviews by movie ID %s: %w", movieID, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *reviewRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list reviews",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *reviewRepository) collect(rows pgx.Rows) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}

func (r *reviewRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reviews by user %s: %w", userID.String(), err)
	}
	return count, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `UPDATE reviews SET rating = $2, content = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, review.ID, review.Rating, review.Content)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update review %s: %w", review.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete review %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

// GetStatsByMovieIDs computes average rating and review count for every id in
// one grouped query. Ids without reviews are absent from the result.
func (r *reviewRepository) GetStatsByMovieIDs(ctx context.Context, movieIDs []string) (map[string]entity.ReviewStats, error) {
	stats := make(map[string]entity.ReviewStats, len(movieIDs))
	if len(movieIDs) == 0 {
		return stats, nil
	}

	query := `
		SELECT movie_id, AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
		FROM reviews
		WHERE movie_id = ANY($1)
		GROUP BY movie_id
	`

	rows, err := r.db.Query(ctx, query, movieIDs)
	if err != nil {
		r.log.Error("Failed to get review stats",
			zap.Error(err),
			zap.Int("movie_count", len(movieIDs)),
		)
		return nil, fmt.Errorf("get review stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s entity.ReviewStats
		if err := rows.Scan(&s.MovieID, &s.AverageRating, &s.ReviewCount); err != nil {
			r.log.Error("Failed to scan review stats row", zap.Error(err))
			return nil, fmt.Errorf("scan review stats: %w", err)
		}
		stats[s.MovieID] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review stats: %w", err)
	}

	return stats, nil
}

func (r *reviewRepository) FindReviewedMovieIDs(ctx context.Context, userID uuid.UUID, movieIDs []string) (map[string]struct{}, error) {
	query := `
		SELECT DISTINCT movie_id
		FROM reviews
		WHERE user_id = $1 AND movie_id = ANY($2)
	`

	ids, err := queryIDSet(ctx, r.db, query, userID, movieIDs)
	if err != nil {
		r.log.Error("Failed to find reviewed movies",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reviewed movies for user %s: %w", userID.String(), err)
	}

	return ids, nil
}

// queryIDSet runs a single-column (user, ids) query and returns the ids as a set.
func queryIDSet(ctx context.Context, db database.PgxIface, query string, userID uuid.UUID, movieIDs []string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if len(movieIDs) == 0 {
		return set, nil
	}

	rows, err := db.Query(ctx, query, userID, movieIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = struct{}{}
	}

	return set, rows.Err()
}
