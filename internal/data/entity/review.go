package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	MovieID *string   `db:"movie_id"` // imdb id, nil only for legacy unlinked rows
	Rating  int       `db:"rating"`   // 1-10
	Content string    `db:"content"`
}

// ReviewStats is the aggregate of all reviews of one movie.
type ReviewStats struct {
	MovieID       string  `db:"movie_id"`
	AverageRating float64 `db:"avg_rating"`
	ReviewCount   int64   `db:"review_count"`
}
