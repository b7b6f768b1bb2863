// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"encoding/json"
	"time"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/domain"
	"lumbertrace/internal/domain/filter"
)

// DateLayout is the calendar date format accepted by list filters.
const DateLayout = "2006-01-02"

// --- List ---

// ListQuery contains the common list parameters.
type ListQuery struct {
	Search      string `form:"search"`
	CreatedFrom string `form:"createdFrom"`
	CreatedTo   string `form:"createdTo"`

	// Filter is a JSON array of filter items
	Filter string `form:"filter"`

	// Expr is a CEL predicate over the record, bound to m
	Expr string `form:"expr"`

	Limit  int `form:"limit" binding:"min=0,max=500"`
	Offset int `form:"offset" binding:"min=0"`
}

// ToFilter converts query parameters into a domain filter. Dates are whole
// days in loc.
func (q *ListQuery) ToFilter(loc *time.Location) (domain.ListFilter, error) {
	f := domain.ListFilter{
		Search:     q.Search,
		Expression: q.Expr,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}

	from, err := parseDate("createdFrom", q.CreatedFrom, loc)
	if err != nil {
		return f, err
	}
	to, err := parseDate("createdTo", q.CreatedTo, loc)
	if err != nil {
		return f, err
	}
	f.CreatedFrom, f.CreatedTo = domain.DayRange(from, to, loc)

	if q.Filter != "" {
		var items []filter.Item
		if err := json.Unmarshal([]byte(q.Filter), &items); err != nil {
			return f, apperror.NewValidation("invalid filter format (json expected)")
		}
		f.AdvancedFilters = items
	}
	return f, nil
}

func parseDate(field, raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return nil, apperror.NewValidation("invalid date, expected yyyy-mm-dd").
			WithDetail("field", field).
			WithDetail("value", raw)
	}
	return &t, nil
}

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// FromListResult converts a domain list result.
func FromListResult[T any](r domain.ListResult[T]) ListResponse {
	return ListResponse{
		Items:      r.Items,
		TotalCount: r.TotalCount,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
