package request

import (
	"net/url"

	"property-booking/pkg/utils"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PaginatedRequest is a 1-based page window. Out of range values are
// clamped rather than rejected.
type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// PaginationFromQuery reads ?page= and ?per_page=.
func PaginationFromQuery(q url.Values) *PaginatedRequest {
	return &PaginatedRequest{
		Page:    utils.ParseInt(q.Get("page"), 1),
		PerPage: utils.ParseInt(q.Get("per_page"), DefaultPerPage),
	}
}

func (p PaginatedRequest) CurrentPage() int {
	return max(p.Page, 1)
}

func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return DefaultPerPage
	case p.PerPage > MaxPerPage:
		return MaxPerPage
	default:
		return p.PerPage
	}
}

func (p PaginatedRequest) Offset() int {
	return (p.CurrentPage() - 1) * p.Limit()
}
