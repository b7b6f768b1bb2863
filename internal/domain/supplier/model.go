// Package supplier contains wood suppliers and the compliance records kept for them.
package supplier

import (
	"context"

	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/core/validation"
)

// DefaultName is used when a supplier is saved without a name.
const DefaultName = "Nume Furnizor Lipsă"

// Supplier is a legal entity delivering raw wood.
type Supplier struct {
	entity.Record `yaml:",inline"`

	Name          string `db:"nume" json:"nume" yaml:"nume" validate:"required,max=200"`
	ContactPerson string `db:"persoana_contact" json:"persoanaContact,omitempty" yaml:"persoanaContact"`
	Email         string `db:"email" json:"email,omitempty" yaml:"email" validate:"omitempty,email"`
	Phone         string `db:"telefon" json:"telefon,omitempty" yaml:"telefon"`
	Address       string `db:"adresa" json:"adresa,omitempty" yaml:"adresa"`

	// IkeaSupplierID is assigned by IKEA and printed on traceability reports.
	IkeaSupplierID string `db:"ikea_supplier_id" json:"ikeaSupplierId,omitempty" yaml:"ikeaSupplierId" validate:"max=64"`

	Compliance Compliance `db:"-" json:"compliance" yaml:"compliance"`
}

// Compliance holds the supplier-level audit and due-diligence records.
type Compliance struct {
	ComplianceOfficerInfo         string `json:"complianceOfficerInfo,omitempty" yaml:"complianceOfficerInfo,omitempty"`
	SubSupplierInfo               string `json:"subSupplierInfo,omitempty" yaml:"subSupplierInfo,omitempty"`
	TraceabilitySystemDescription string `json:"traceabilitySystemDescription,omitempty" yaml:"traceabilitySystemDescription,omitempty"`
	SupplyChainFlowChartData      string `json:"supplyChainFlowChartData,omitempty" yaml:"supplyChainFlowChartData,omitempty"`
	LatestThirdPartyAuditReports  string `json:"latestThirdPartyAuditReports,omitempty" yaml:"latestThirdPartyAuditReports,omitempty"`
	CorrectiveActionPlans         string `json:"correctiveActionPlans,omitempty" yaml:"correctiveActionPlans,omitempty"`
	IkeaOwnAuditResults           string `json:"ikeaOwnAuditResults,omitempty" yaml:"ikeaOwnAuditResults,omitempty"`
	LegalComplianceDeclarations   string `json:"legalComplianceDeclarations,omitempty" yaml:"legalComplianceDeclarations,omitempty"`
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	return validation.Struct(s)
}

// ApplyDefaults fills the fields an operator may leave empty.
func (s *Supplier) ApplyDefaults() {
	if s.Name == "" {
		s.Name = DefaultName
	}
}
