package supplier

import (
	"lumbertrace/internal/domain"
)

// Repository defines data access for suppliers.
type Repository interface {
	domain.Repository[*Supplier]
}
