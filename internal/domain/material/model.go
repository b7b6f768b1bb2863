// Package material contains the wood material catalog: raw logs and processed
// lumber, their component links and the sourcing attributes kept for each batch.
package material

import (
	"context"
	"slices"

	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/core/validation"
)

// Type distinguishes raw wood from milled material.
type Type string

const (
	TypeRaw       Type = "Materie prima"
	TypeProcessed Type = "Material prelucrat"
)

// State is the handling stage of a batch in the mill.
type State string

const (
	StateReceived   State = "Receptionat"
	StateInProgress State = "In lucru"
	StateDelivered  State = "Livrat"
)

// Ownership of the harvest forest.
const (
	OwnershipPublic   = "Public"
	OwnershipPrivate  = "Privat"
	OwnershipCommunal = "Comunal"
	OwnershipOther    = "Altul"
)

// Forest types.
const (
	ForestNaturalPrimary = "Naturală/Primară"
	ForestSemiNatural    = "Semi-naturală"
	ForestPlantation     = "Plantație"
)

// Surface finishes of processed lumber.
const (
	FinishRough     = "Brut"
	FinishS2S       = "Rindeluit 2 Fețe (S2S)"
	FinishS4S       = "Rindeluit 4 Fețe (S4S)"
	FinishSanded    = "Șlefuit"
	FinishPainted   = "Vopsit"
	FinishLacquered = "Lăcuit"
	FinishOiled     = "Uleiat"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultName = "Nume Lipsa"
)

func init() {
	validation.RegisterEnum("material_type", string(TypeRaw), string(TypeProcessed))
	validation.RegisterEnum("material_state", string(StateReceived), string(StateInProgress), string(StateDelivered))
	validation.RegisterEnum("forest_ownership", OwnershipPublic, OwnershipPrivate, OwnershipCommunal, OwnershipOther)
	validation.RegisterEnum("forest_type", ForestNaturalPrimary, ForestSemiNatural, ForestPlantation)
	validation.RegisterEnum("surface_finish", FinishRough, FinishS2S, FinishS4S, FinishSanded, FinishPainted, FinishLacquered, FinishOiled)
}

// Material is one tracked batch of wood.
type Material struct {
	entity.Record `yaml:",inline"`

	Name        string `db:"nume" json:"nume" yaml:"nume" validate:"required,max=200"`
	Description string `db:"descriere" json:"descriere" yaml:"descriere"`
	Type        Type   `db:"tip" json:"tip" yaml:"tip" validate:"required,enum=material_type"`
	State       State  `db:"stare" json:"stare" yaml:"stare" validate:"required,enum=material_state"`

	// SupplierID links raw material to its supplier; empty when unknown.
	SupplierID string `db:"supplier_id" json:"supplierId,omitempty" yaml:"supplierId" validate:"max=64"`

	// Components lists child material ids in insertion order. Entries may be
	// dangling, repeated or cyclic; the resolver copes with all of it.
	Components []string `db:"componente" json:"componente" yaml:"componente"`

	Details Details `db:"-" json:"details" yaml:"details"`
}

// Validate implements entity.Validatable.
func (m *Material) Validate(ctx context.Context) error {
	return validation.Struct(m)
}

// ApplyDefaults fills the fields an operator may leave empty.
func (m *Material) ApplyDefaults() {
	if m.Name == "" {
		m.Name = DefaultName
	}
	if m.Type == "" {
		m.Type = TypeRaw
	}
	if m.State == "" {
		m.State = StateReceived
	}
	if m.Components == nil {
		m.Components = []string{}
	}
}

// IsRaw reports whether the material is raw wood.
func (m *Material) IsRaw() bool {
	return m.Type == TypeRaw
}

// IsProcessed reports whether the material is milled.
func (m *Material) IsProcessed() bool {
	return m.Type == TypeProcessed
}

// HasComponent reports whether componentID is already linked.
func (m *Material) HasComponent(componentID string) bool {
	return slices.Contains(m.Components, componentID)
}

// AddComponent appends componentID unless already present.
// Returns false when nothing changed.
func (m *Material) AddComponent(componentID string) bool {
	if m.HasComponent(componentID) {
		return false
	}
	m.Components = append(m.Components, componentID)
	return true
}

// RemoveComponent drops every occurrence of componentID.
// Returns false when nothing changed.
func (m *Material) RemoveComponent(componentID string) bool {
	before := len(m.Components)
	m.Components = slices.DeleteFunc(m.Components, func(c string) bool { return c == componentID })
	return len(m.Components) != before
}

// Clone returns a deep copy.
func (m *Material) Clone() *Material {
	c := *m
	c.Components = slices.Clone(m.Components)
	return &c
}
