package badgerkv

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
)

// MaterialRepo implements material.Repository.
type MaterialRepo struct {
	*collection[*material.Material]
}

// NewMaterialRepo creates a material repository.
func NewMaterialRepo(db *DB) *MaterialRepo {
	return &MaterialRepo{&collection[*material.Material]{
		db:     db,
		prefix: "material",
		entity: "material",
		newFn:  func() *material.Material { return &material.Material{} },
		searchText: func(m *material.Material) []string {
			return []string{m.Name, m.Description}
		},
	}}
}

// DetachSupplier clears supplierId on materials referencing supplierID.
func (r *MaterialRepo) DetachSupplier(ctx context.Context, supplierID string) (int, error) {
	changed := 0
	err := r.db.update(ctx, func(txn *badger.Txn) error {
		var touched []*material.Material
		err := r.each(txn, func(m *material.Material) error {
			if m.SupplierID == supplierID {
				m.SupplierID = ""
				touched = append(touched, m)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, m := range touched {
			if err := r.put(txn, m); err != nil {
				return err
			}
		}
		changed = len(touched)
		return nil
	})
	return changed, err
}

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*collection[*supplier.Supplier]
}

// NewSupplierRepo creates a supplier repository.
func NewSupplierRepo(db *DB) *SupplierRepo {
	return &SupplierRepo{&collection[*supplier.Supplier]{
		db:     db,
		prefix: "supplier",
		entity: "supplier",
		newFn:  func() *supplier.Supplier { return &supplier.Supplier{} },
		searchText: func(s *supplier.Supplier) []string {
			return []string{s.Name, s.IkeaSupplierID, s.ContactPerson}
		},
	}}
}

var (
	_ material.Repository = (*MaterialRepo)(nil)
	_ supplier.Repository = (*SupplierRepo)(nil)
)
