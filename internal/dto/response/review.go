package response

import (
	"movie-review/internal/data/catalog"
	"movie-review/internal/data/entity"
	"time"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	MovieID   *string   `json:"movie_id"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review, username string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		UserID:    review.UserID.String(),
		Username:  username,
		MovieID:   review.MovieID,
		Rating:    review.Rating,
		Content:   review.Content,
		CreatedAt: review.CreatedAt,
	}
}

// ReviewFormResponse is the state of the "write a review" screen: the catalog
// search the user ran and, after a rejected post, what they had typed.
type ReviewFormResponse struct {
	SearchQuery   string          `json:"search_query"`
	SearchResults []catalog.Entry `json:"search_results"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	ImdbID        string          `json:"imdb_id,omitempty"`
	Title         string          `json:"title,omitempty"`
	Rating        string          `json:"rating,omitempty"`
	Content       string          `json:"content,omitempty"`
}
