package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
)

type materialRow struct {
	entity.Record
	Name        string                         `db:"nume"`
	Description string                         `db:"descriere"`
	Type        string                         `db:"tip"`
	State       string                         `db:"stare"`
	SupplierID  string                         `db:"supplier_id"`
	Components  []string                       `db:"componente"`
	Details     entity.JSONB[material.Details] `db:"details"`
}

func toMaterialRow(m *material.Material) materialRow {
	components := m.Components
	if components == nil {
		components = []string{}
	}
	return materialRow{
		Record:      m.Record,
		Name:        m.Name,
		Description: m.Description,
		Type:        string(m.Type),
		State:       string(m.State),
		SupplierID:  m.SupplierID,
		Components:  components,
		Details:     entity.JSONB[material.Details]{V: m.Details},
	}
}

func fromMaterialRow(r materialRow) *material.Material {
	components := r.Components
	if components == nil {
		components = []string{}
	}
	return &material.Material{
		Record:      r.Record,
		Name:        r.Name,
		Description: r.Description,
		Type:        material.Type(r.Type),
		State:       material.State(r.State),
		SupplierID:  r.SupplierID,
		Components:  components,
		Details:     r.Details.V,
	}
}

// MaterialRepo implements material.Repository.
type MaterialRepo struct {
	*baseRepo[*material.Material, materialRow]
}

// NewMaterialRepo creates a material repository.
func NewMaterialRepo(txm *TxManager) *MaterialRepo {
	return &MaterialRepo{&baseRepo[*material.Material, materialRow]{
		txm:        txm,
		tableName:  "materials",
		entity:     "material",
		cols:       ExtractDBColumns[materialRow](),
		searchCols: []string{"nume", "descriere"},
		filterCols: map[string]string{
			"nume":       "nume",
			"tip":        "tip",
			"stare":      "stare",
			"supplierId": "supplier_id",
		},
		toRow:   toMaterialRow,
		fromRow: fromMaterialRow,
	}}
}

// DetachSupplier clears supplier_id on rows referencing supplierID.
func (r *MaterialRepo) DetachSupplier(ctx context.Context, supplierID string) (int, error) {
	sql, args, err := r.detachQuery(supplierID).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build detach: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, apperror.NewStorage("detach supplier", err)
	}
	return int(result.RowsAffected()), nil
}

func (r *MaterialRepo) detachQuery(supplierID string) squirrel.UpdateBuilder {
	return r.Builder().
		Update(r.tableName).
		Set("supplier_id", "").
		Where(squirrel.Eq{"supplier_id": supplierID})
}

type supplierRow struct {
	entity.Record
	Name           string                            `db:"nume"`
	ContactPerson  string                            `db:"persoana_contact"`
	Email          string                            `db:"email"`
	Phone          string                            `db:"telefon"`
	Address        string                            `db:"adresa"`
	IkeaSupplierID string                            `db:"ikea_supplier_id"`
	Compliance     entity.JSONB[supplier.Compliance] `db:"compliance"`
}

func toSupplierRow(s *supplier.Supplier) supplierRow {
	return supplierRow{
		Record:         s.Record,
		Name:           s.Name,
		ContactPerson:  s.ContactPerson,
		Email:          s.Email,
		Phone:          s.Phone,
		Address:        s.Address,
		IkeaSupplierID: s.IkeaSupplierID,
		Compliance:     entity.JSONB[supplier.Compliance]{V: s.Compliance},
	}
}

func fromSupplierRow(r supplierRow) *supplier.Supplier {
	return &supplier.Supplier{
		Record:         r.Record,
		Name:           r.Name,
		ContactPerson:  r.ContactPerson,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		IkeaSupplierID: r.IkeaSupplierID,
		Compliance:     r.Compliance.V,
	}
}

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*baseRepo[*supplier.Supplier, supplierRow]
}

// NewSupplierRepo creates a supplier repository.
func NewSupplierRepo(txm *TxManager) *SupplierRepo {
	return &SupplierRepo{&baseRepo[*supplier.Supplier, supplierRow]{
		txm:        txm,
		tableName:  "suppliers",
		entity:     "supplier",
		cols:       ExtractDBColumns[supplierRow](),
		searchCols: []string{"nume", "ikea_supplier_id", "persoana_contact"},
		filterCols: map[string]string{
			"nume":           "nume",
			"email":          "email",
			"ikeaSupplierId": "ikea_supplier_id",
		},
		toRow:   toSupplierRow,
		fromRow: fromSupplierRow,
	}}
}

var (
	_ material.Repository = (*MaterialRepo)(nil)
	_ supplier.Repository = (*SupplierRepo)(nil)
)
