package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// GetOrCreate inserts the movie unless a row with the same imdb id exists.
	// An existing row is returned untouched, its title is not refreshed.
	GetOrCreate(ctx context.Context, imdbID, title string) (*entity.Movie, bool, error)
	FindByID(ctx context.Context, imdbID string) (*entity.Movie, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) GetOrCreate(ctx context.Context, imdbID, title string) (*entity.Movie, bool, error) {
	// The no-op update makes RETURNING yield the existing row on conflict;
	// xmax is 0 only for freshly inserted tuples.
	query := `
		INSERT INTO movies (imdb_id, title, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (imdb_id) DO UPDATE SET title = movies.title
		RETURNING imdb_id, title, created_at, (xmax = 0) AS created
	`

	var movie entity.Movie
	var created bool
	err := r.db.QueryRow(ctx, query, imdbID, title).Scan(
		&movie.ImdbID,
		&movie.Title,
		&movie.CreatedAt,
		&created,
	)
	if err != nil {
		r.log.Error("Failed to get or create movie",
			zap.Error(err),
			zap.String("imdb_id", imdbID),
		)
		return nil, false, fmt.Errorf("get or create movie %s: %w", imdbID, err)
	}

	if created {
		r.log.Debug("Movie materialized",
			zap.String("imdb_id", imdbID),
			zap.String("title", title),
		)
	}

	return &movie, created, nil
}

func (r *movieRepository) FindByID(ctx context.Context, imdbID string) (*entity.Movie, error) {
	query := `SELECT imdb_id, title, created_at FROM movies WHERE imdb_id = $1`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, imdbID).Scan(
		&movie.ImdbID,
		&movie.Title,
		&movie.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("imdb_id", imdbID),
		)
		return nil, fmt.Errorf("find movie %s: %w", imdbID, err)
	}

	return &movie, nil
}
