package request

type ToggleFavoriteRequest struct {
	MovieID    string `json:"movie_id" form:"movie_id" validate:"required,max=50"`
	MovieTitle string `json:"movie_title" form:"movie_title" validate:"required,max=255"`
	PosterURL  string `json:"poster_url" form:"poster_url" validate:"omitempty,url"`
}
