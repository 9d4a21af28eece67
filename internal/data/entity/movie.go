package entity

import "time"

// Movie is the local snapshot of a catalog title. ImdbID is the external
// catalog id and doubles as the primary key.
type Movie struct {
	ImdbID    string    `db:"imdb_id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}
