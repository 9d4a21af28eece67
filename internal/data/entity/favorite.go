package entity

import (
	"github.com/google/uuid"
)

// Favorite keeps the title and poster as they were when the user starred the movie.
type Favorite struct {
	BaseSimple
	UserID     uuid.UUID `db:"user_id"`
	MovieID    string    `db:"movie_id"`
	MovieTitle string    `db:"movie_title"`
	PosterURL  *string   `db:"poster_url"`
}
