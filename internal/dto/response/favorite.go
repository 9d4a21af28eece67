package response

import (
	"movie-review/internal/data/entity"
	"time"
)

type FavoriteResponse struct {
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	PosterURL  *string   `json:"poster_url,omitempty"`
	DateAdded  time.Time `json:"date_added"`
}

type ToggleFavoriteResponse struct {
	MovieID    string `json:"movie_id"`
	IsFavorite bool   `json:"is_favorite"`
}

func FavoriteToResponse(f *entity.Favorite) FavoriteResponse {
	return FavoriteResponse{
		MovieID:    f.MovieID,
		MovieTitle: f.MovieTitle,
		PosterURL:  f.PosterURL,
		DateAdded:  f.CreatedAt,
	}
}
