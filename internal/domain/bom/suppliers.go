package bom

import (
	"lumbertrace/internal/domain/supplier"
)

// Placeholder printed when a lookup has nothing to show.
const Placeholder = "-"

// SupplierDirectory resolves supplier ids for display.
type SupplierDirectory map[string]*supplier.Supplier

// NewSupplierDirectory indexes suppliers by id, first record wins.
func NewSupplierDirectory(list []*supplier.Supplier) SupplierDirectory {
	d := make(SupplierDirectory, len(list))
	for _, s := range list {
		if s == nil {
			continue
		}
		if _, dup := d[s.ID]; !dup {
			d[s.ID] = s
		}
	}
	return d
}

// Name returns the supplier's name. An unknown supplier shows its raw id and
// an empty id shows the placeholder.
func (d SupplierDirectory) Name(supplierID string) string {
	if supplierID == "" {
		return Placeholder
	}
	if s, ok := d[supplierID]; ok && s.Name != "" {
		return s.Name
	}
	return supplierID
}

// IkeaID returns the IKEA-assigned supplier id or the placeholder.
func (d SupplierDirectory) IkeaID(supplierID string) string {
	if s, ok := d[supplierID]; ok && s.IkeaSupplierID != "" {
		return s.IkeaSupplierID
	}
	return Placeholder
}

// Get returns the supplier or nil.
func (d SupplierDirectory) Get(supplierID string) *supplier.Supplier {
	return d[supplierID]
}
