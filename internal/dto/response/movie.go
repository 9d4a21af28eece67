package response

import (
	"movie-review/internal/data/catalog"
)

// EnrichedMovie is a catalog search entry joined with local statistics.
type EnrichedMovie struct {
	ImdbID          string  `json:"imdbID"`
	Title           string  `json:"Title"`
	Year            string  `json:"Year"`
	Type            string  `json:"Type"`
	Poster          string  `json:"Poster"`
	AverageRating   float64 `json:"average_rating"`
	ReviewCount     int64   `json:"review_count"`
	IsFavorite      bool    `json:"is_favorite"`
	UserHasReviewed bool    `json:"user_has_reviewed"`
}

// MovieStats are the local fields attached to a catalog record.
type MovieStats struct {
	AverageRating   float64 `json:"average_rating"`
	ReviewCount     int64   `json:"review_count"`
	IsFavorite      bool    `json:"is_favorite"`
	UserHasReviewed bool    `json:"user_has_reviewed"`
}

func EntryToEnriched(entry catalog.Entry, stats MovieStats) EnrichedMovie {
	return EnrichedMovie{
		ImdbID:          entry.ImdbID,
		Title:           entry.Title,
		Year:            entry.Year,
		Type:            entry.Type,
		Poster:          entry.Poster,
		AverageRating:   stats.AverageRating,
		ReviewCount:     stats.ReviewCount,
		IsFavorite:      stats.IsFavorite,
		UserHasReviewed: stats.UserHasReviewed,
	}
}

type MovieListResponse struct {
	Movies       []EnrichedMovie `json:"movies"`
	Genres       []string        `json:"genres"`
	CurrentGenre string          `json:"current_genre"`
	CurrentPage  int             `json:"current_page"`
}

type MovieDetail struct {
	*catalog.Detail
	MovieStats
}

type MovieDetailResponse struct {
	Movie   MovieDetail      `json:"movie"`
	Reviews []ReviewResponse `json:"reviews"`
	// StoredTitle is the title saved with the first review or view. It can
	// differ from the catalog title and survives catalog outages.
	StoredTitle  string `json:"stored_title,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
