package dto

import (
	"time"

	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/domain/bom"
	"lumbertrace/internal/domain/material"
)

// MaterialRequest is the body of POST and PUT /materials.
type MaterialRequest struct {
	Name        string           `json:"nume"`
	Description string           `json:"descriere"`
	Type        material.Type    `json:"tip"`
	State       material.State   `json:"stare"`
	SupplierID  string           `json:"supplierId"`
	Components  []string         `json:"componente"`
	Details     material.Details `json:"details"`

	// CreatedAt is kept when the material is created under a supplied id
	CreatedAt *time.Time `json:"createdAt"`
}

// ToEntity converts the request to a material. An empty id creates a new one.
func (r *MaterialRequest) ToEntity(materialID string) *material.Material {
	m := &material.Material{
		Record:      entity.Record{ID: materialID},
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		State:       r.State,
		SupplierID:  r.SupplierID,
		Components:  r.Components,
		Details:     r.Details,
	}
	if r.CreatedAt != nil {
		m.CreatedAt = *r.CreatedAt
	}
	return m
}

// MaterialListQuery adds the state filter to ListQuery.
type MaterialListQuery struct {
	ListQuery
	State material.State `form:"stare"`
}

// ScanRequest carries a label scan, either {"id":"..."} text or a bare id.
type ScanRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// BOMResponse is the resolved bill of materials of a material.
type BOMResponse struct {
	Material   *material.Material   `json:"material"`
	Components []*material.Material `json:"components"`
	Raw        []*material.Material `json:"raw"`
	Processed  []*material.Material `json:"processed"`
	Other      []*material.Material `json:"other"`
	Suppliers  map[string]string    `json:"suppliers"`
}

// NewBOMResponse builds the response. Suppliers maps every supplier id
// referenced by the components to its display name.
func NewBOMResponse(root *material.Material, components []*material.Material, groups bom.Classification, dir bom.SupplierDirectory) BOMResponse {
	names := make(map[string]string)
	for _, m := range components {
		if m.SupplierID != "" {
			names[m.SupplierID] = dir.Name(m.SupplierID)
		}
	}
	return BOMResponse{
		Material:   root,
		Components: nonNil(components),
		Raw:        nonNil(groups.Raw),
		Processed:  nonNil(groups.Processed),
		Other:      nonNil(groups.Other),
		Suppliers:  names,
	}
}

func nonNil(list []*material.Material) []*material.Material {
	if list == nil {
		return []*material.Material{}
	}
	return list
}
