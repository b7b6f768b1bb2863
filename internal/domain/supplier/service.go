package supplier

import (
	"context"

	"lumbertrace/internal/core/id"
	"lumbertrace/internal/core/tx"
	"lumbertrace/internal/domain"
)

// MaterialDetacher clears supplier references from materials.
type MaterialDetacher interface {
	DetachSupplier(ctx context.Context, supplierID string) (int, error)
}

// Service provides business logic for suppliers.
type Service struct {
	*domain.RecordService[*Supplier]
}

// NewService creates a new supplier service. Deleting a supplier detaches it
// from every material in the same transaction.
func NewService(repo Repository, txm tx.Manager, materials MaterialDetacher) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "supplier",
		IDPrefix:   id.SupplierPrefix,
	})

	base.Hooks().On(domain.BeforeDelete, func(ctx context.Context, s *Supplier) error {
		_, err := materials.DetachSupplier(ctx, s.ID)
		return err
	})

	return &Service{RecordService: base}
}
