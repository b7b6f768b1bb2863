// Package domain provides the generic record service and repository contracts
// shared by materials and suppliers.
package domain

import (
	"context"
	"encoding/json"
	"time"

	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/domain/filter"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search matches name or id, case-insensitive
	Search string

	// CreatedFrom and CreatedTo bound createdAt, both inclusive.
	// Use DayRange to widen calendar dates to whole days.
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// AdvancedFilters are field comparisons translated by the backend
	AdvancedFilters []filter.Item

	// Expression is an optional CEL predicate evaluated in memory
	Expression string

	// Pagination, applied after Expression
	Limit  int
	Offset int
}

// DayRange widens calendar dates to [from 00:00:00, to 23:59:59.999] in loc.
// Nil bounds stay open.
func DayRange(from, to *time.Time, loc *time.Location) (*time.Time, *time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	var start, end *time.Time
	if from != nil {
		y, m, d := from.In(loc).Date()
		s := time.Date(y, m, d, 0, 0, 0, 0, loc)
		start = &s
	}
	if to != nil {
		y, m, d := to.In(loc).Date()
		e := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
		end = &e
	}
	return start, end
}

// InRange reports whether t falls within the filter's createdAt bounds.
func (f ListFilter) InRange(t time.Time) bool {
	if f.CreatedFrom != nil && t.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && t.After(*f.CreatedTo) {
		return false
	}
	return true
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Entities & Repositories ---

// Entity is the constraint for records handled by RecordService.
type Entity interface {
	entity.Validatable

	// Meta exposes identity and timestamps.
	Meta() *entity.Record

	// ApplyDefaults fills fields left empty by the caller.
	ApplyDefaults()
}

// Repository defines storage operations for a record type.
type Repository[T Entity] interface {
	// Create inserts a new record
	Create(ctx context.Context, e T) error

	// Update replaces a stored record
	Update(ctx context.Context, e T) error

	// GetByID returns NotFound AppError when absent
	GetByID(ctx context.Context, id string) (T, error)

	// Exists checks if record with given ID exists
	Exists(ctx context.Context, id string) (bool, error)

	// Delete removes the record physically
	Delete(ctx context.Context, id string) error

	// List returns records matching Search, date bounds and AdvancedFilters,
	// newest first. Expression and pagination are applied by the service.
	List(ctx context.Context, f ListFilter) ([]T, error)
}

// Fields flattens a record to its json representation for filter
// evaluation (json name -> value).
func Fields(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	out := make(map[string]any)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeSave   HookEvent = "before_save"
	AfterSave    HookEvent = "after_save"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, e T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, e T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
