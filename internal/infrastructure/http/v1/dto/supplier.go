package dto

import (
	"time"

	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/domain/supplier"
)

// SupplierRequest is the body of POST and PUT /suppliers.
type SupplierRequest struct {
	Name           string              `json:"nume"`
	ContactPerson  string              `json:"persoanaContact"`
	Email          string              `json:"email"`
	Phone          string              `json:"telefon"`
	Address        string              `json:"adresa"`
	IkeaSupplierID string              `json:"ikeaSupplierId"`
	Compliance     supplier.Compliance `json:"compliance"`
	CreatedAt      *time.Time          `json:"createdAt"`
}

// ToEntity converts the request to a supplier.
func (r *SupplierRequest) ToEntity(supplierID string) *supplier.Supplier {
	s := &supplier.Supplier{
		Record:         entity.Record{ID: supplierID},
		Name:           r.Name,
		ContactPerson:  r.ContactPerson,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		IkeaSupplierID: r.IkeaSupplierID,
		Compliance:     r.Compliance,
	}
	if r.CreatedAt != nil {
		s.CreatedAt = *r.CreatedAt
	}
	return s
}
