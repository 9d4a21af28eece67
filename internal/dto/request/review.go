package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RatingInput holds the rating exactly as the client sent it. JSON clients may
// send 7 or "7"; both keep their raw text so that "abc" reaches validation
// instead of failing the body decode.
type RatingInput string

func (r *RatingInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RatingInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rating must be a number or a string: %w", err)
	}
	*r = RatingInput(n.String())
	return nil
}

// CreateReviewRequest is posted from the review form and the movie detail page.
type CreateReviewRequest struct {
	ImdbID  string      `json:"imdb_id" form:"imdb_id" validate:"required,max=20"`
	Title   string      `json:"title" form:"title" validate:"required,max=255"`
	Rating  RatingInput `json:"rating" form:"rating" validate:"required"`
	Content string      `json:"content" form:"content" validate:"required"`
}

type UpdateReviewRequest struct {
	Rating  *RatingInput `json:"rating,omitempty" form:"rating"`
	Content *string      `json:"content,omitempty" form:"content" validate:"omitempty,min=1"`
}

// ParseRating returns the rating as an int in [1, 10].
func ParseRating(raw RatingInput) (int, bool) {
	rating, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || rating < 1 || rating > 10 {
		return 0, false
	}
	return rating, true
}
