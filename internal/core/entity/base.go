// Package entity provides base types shared by materials and suppliers.
package entity

import (
	"context"
	"time"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without storage access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Record contains the identity and audit timestamps every stored entity carries.
// Timestamps are owned by the storage layer; domain code only reads them.
type Record struct {
	// ID is the human-readable identifier (MAT-..., SUP-...)
	ID string `db:"id" json:"id" yaml:"id"`

	CreatedAt time.Time `db:"created_at" json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt" yaml:"updatedAt"`
}

// Meta returns the record itself. Embedding types satisfy accessors through it.
func (r *Record) Meta() *Record {
	return r
}

// Stamp prepares timestamps for the first write.
// A caller-supplied CreatedAt is kept, which lets imports preserve history.
func (r *Record) Stamp(now time.Time) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

// Touch refreshes UpdatedAt, keeping CreatedAt from the stored version.
func (r *Record) Touch(stored Record, now time.Time) {
	r.ID = stored.ID
	r.CreatedAt = stored.CreatedAt
	r.UpdatedAt = now
}
