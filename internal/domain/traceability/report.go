package traceability

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lumbertrace/internal/domain/bom"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
)

// Line is one component row of a report.
type Line struct {
	Material       *material.Material `json:"material"`
	SupplierName   string             `json:"supplierName"`
	SupplierIkeaID string             `json:"supplierIkeaId"`
}

// Totals sums the weights entered on components. Weights that do not parse
// as numbers are counted in Unparsed and left out of the sums.
type Totals struct {
	RawEstimatedWeightKg decimal.Decimal `json:"rawEstimatedWeightKg"`
	ProcessedWeightKg    decimal.Decimal `json:"processedWeightKg"`
	Unparsed             int             `json:"unparsedWeights"`
}

// Report is the traceability report of one material.
type Report struct {
	Material *material.Material `json:"material"`

	// Supplier of the material itself, set for raw material only.
	Supplier     *supplier.Supplier `json:"supplier,omitempty"`
	SupplierName string             `json:"supplierName"`

	Raw       []Line `json:"raw"`
	Processed []Line `json:"processed"`
	Other     []Line `json:"other,omitempty"`

	Totals      Totals    `json:"totals"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// BuildReport resolves materialID and assembles its report.
func (s *Service) BuildReport(ctx context.Context, materialID string) (*Report, error) {
	ctx, span := tracer.Start(ctx, "traceability.report")
	defer span.End()

	res, err := s.Resolve(ctx, materialID)
	if err != nil {
		return nil, err
	}
	return NewReport(res, s.now()), nil
}

// NewReport builds a report from a resolution.
func NewReport(res *Resolution, generatedAt time.Time) *Report {
	r := &Report{
		Material:     res.Root,
		SupplierName: bom.Placeholder,
		Raw:          lines(res.Groups.Raw, res.Suppliers),
		Processed:    lines(res.Groups.Processed, res.Suppliers),
		Other:        lines(res.Groups.Other, res.Suppliers),
		GeneratedAt:  generatedAt.UTC(),
	}

	if res.Root.IsRaw() {
		r.Supplier = res.Suppliers.Get(res.Root.SupplierID)
		r.SupplierName = res.Suppliers.Name(res.Root.SupplierID)
	}

	r.Totals.RawEstimatedWeightKg, r.Totals.Unparsed = sumWeights(res.Groups.Raw, func(m *material.Material) string {
		return m.Details.EstimatedWeightKg
	})
	var unparsed int
	r.Totals.ProcessedWeightKg, unparsed = sumWeights(res.Groups.Processed, func(m *material.Material) string {
		return m.Details.ProcessedWeightKg
	})
	r.Totals.Unparsed += unparsed

	return r
}

func lines(list []*material.Material, dir bom.SupplierDirectory) []Line {
	out := make([]Line, 0, len(list))
	for _, m := range list {
		out = append(out, Line{
			Material:       m,
			SupplierName:   dir.Name(m.SupplierID),
			SupplierIkeaID: dir.IkeaID(m.SupplierID),
		})
	}
	return out
}

func sumWeights(list []*material.Material, field func(*material.Material) string) (decimal.Decimal, int) {
	total := decimal.Zero
	unparsed := 0
	for _, m := range list {
		raw := field(m)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		w, ok := ParseWeight(raw)
		if !ok {
			unparsed++
			continue
		}
		total = total.Add(w)
	}
	return total, unparsed
}

// ParseWeight reads operator-entered weights such as "1200", "1200 kg" or
// "850,5".
func ParseWeight(raw string) (decimal.Decimal, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, "kg")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
