package material

import (
	"context"

	"lumbertrace/internal/domain"
)

// Repository defines data access for materials.
type Repository interface {
	domain.Repository[*Material]

	// DetachSupplier clears supplierId on every material referencing supplierID
	// and returns how many materials changed.
	DetachSupplier(ctx context.Context, supplierID string) (int, error)
}
