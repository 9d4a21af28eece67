package request

import (
	"net/url"

	"movie-review/pkg/utils"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type PaginatedRequest struct {
	Page    int `json:"page" form:"page" validate:"min=1"`
	PerPage int `json:"per_page" form:"per_page" validate:"min=1,max=100"`
}

// PaginationFromQuery reads page and per_page, leaving unusable values at
// their defaults.
func PaginationFromQuery(query url.Values) *PaginatedRequest {
	return &PaginatedRequest{
		Page:    utils.ParsePage(query.Get("page")),
		PerPage: utils.ParseInt(query.Get("per_page"), DefaultPerPage),
	}
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}
