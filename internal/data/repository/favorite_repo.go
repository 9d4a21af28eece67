package repository

import (
	"context"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FavoriteRepository interface {
	// Toggle adds the favorite when the (user, movie) pair is absent and removes
	// it otherwise. Returns true when the movie is now favorited.
	Toggle(ctx context.Context, favorite *entity.Favorite) (bool, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindFavoritedMovieIDs(ctx context.Context, userID uuid.UUID, movieIDs []string) (map[string]struct{}, error)
}

type favoriteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFavoriteRepository(db database.PgxIface, log *zap.Logger) FavoriteRepository {
	return &favoriteRepository{
		db:  db,
		log: log.With(zap.String("repository", "favorite")),
	}
}

func (r *favoriteRepository) Toggle(ctx context.Context, favorite *entity.Favorite) (bool, error) {
	// The unique (user_id, movie_id) constraint decides: a concurrent toggle
	// blocks on the insert, then sees the committed row and deletes it.
	insert := `
		INSERT INTO favorites (id, user_id, movie_id, movie_title, poster_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, movie_id) DO NOTHING
	`
	remove := `DELETE FROM favorites WHERE user_id = $1 AND movie_id = $2`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin favorite toggle", zap.Error(err))
		return false, fmt.Errorf("begin favorite toggle: %w", err)
	}

	fail := func(op string, err error) (bool, error) {
		_ = tx.Rollback(ctx)
		r.log.Error("Failed to toggle favorite",
			zap.Error(err),
			zap.String("step", op),
			zap.String("user_id", favorite.UserID.String()),
			zap.String("movie_id", favorite.MovieID),
		)
		return false, fmt.Errorf("%s favorite %s for user %s: %w",
			op, favorite.MovieID, favorite.UserID.String(), err)
	}

	tag, err := tx.Exec(ctx, insert,
		favorite.ID,
		favorite.UserID,
		favorite.MovieID,
		favorite.MovieTitle,
		favorite.PosterURL,
		favorite.CreatedAt,
	)
	if err != nil {
		return fail("insert", err)
	}

	favorited := tag.RowsAffected() == 1
	if !favorited {
		if _, err := tx.Exec(ctx, remove, favorite.UserID, favorite.MovieID); err != nil {
			return fail("delete", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fail("commit", err)
	}

	r.log.Debug("Favorite toggled",
		zap.String("user_id", favorite.UserID.String()),
		zap.String("movie_id", favorite.MovieID),
		zap.Bool("favorited", favorited),
	)

	return favorited, nil
}

func (r *favoriteRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error) {
	query := `
		SELECT id, user_id, movie_id, movie_title, poster_url, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find favorites by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find favorites by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var favorites []*entity.Favorite
	for rows.Next() {
		var f entity.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.MovieID, &f.MovieTitle, &f.PosterURL, &f.CreatedAt); err != nil {
			r.log.Error("Failed to scan favorite row", zap.Error(err))
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		favorites = append(favorites, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite rows: %w", err)
	}

	return favorites, nil
}

func (r *favoriteRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM favorites WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count favorites",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count favorites for user %s: %w", userID.String(), err)
	}
	return count, nil
}

func (r *favoriteRepository) FindFavoritedMovieIDs(ctx context.Context, userID uuid.UUID, movieIDs []string) (map[string]struct{}, error) {
	query := `SELECT movie_id FROM favorites WHERE user_id = $1 AND movie_id = ANY($2)`

	ids, err := queryIDSet(ctx, r.db, query, userID, movieIDs)
	if err != nil {
		r.log.Error("Failed to find favorited movies",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find favorited movies for user %s: %w", userID.String(), err)
	}

	return ids, nil
}
