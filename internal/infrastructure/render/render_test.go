package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/domain/bom"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/traceability"
)

func sampleReport() *traceability.Report {
	log := &material.Material{
		Record:     entity.Record{ID: "MAT-1"},
		Name:       "Bustean molid",
		Type:       material.TypeRaw,
		State:      material.StateReceived,
		SupplierID: "SUP-1",
		Details:    material.Details{TreeSpeciesCommon: "Molid", CountryOfHarvest: "România"},
	}
	board := &material.Material{
		Record:     entity.Record{ID: "MAT-2"},
		Name:       "Scândură",
		Type:       material.TypeProcessed,
		State:      material.StateDelivered,
		Components: []string{"MAT-1"},
		Details:    material.Details{SurfaceFinish: material.FinishS4S},
	}
	return &traceability.Report{
		Material:     board,
		SupplierName: bom.Placeholder,
		Raw:          []traceability.Line{{Material: log, SupplierName: "Silvania", SupplierIkeaID: "IKEA-1"}},
		Processed:    []traceability.Line{},
		Totals:       traceability.Totals{RawEstimatedWeightKg: decimal.NewFromInt(1200)},
		GeneratedAt:  time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
	}
}

func TestReportFileName(t *testing.T) {
	at := time.Date(2024, 6, 3, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "Raport_Trasabilitate_MAT-2_2024-06-03.pdf", ReportFileName("MAT-2", at))
}

func TestReportPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ReportPDF(&buf, sampleReport()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestLabel(t *testing.T) {
	m := &material.Material{
		Record: entity.Record{ID: "MAT-LBL1"},
		Name:   "Bustean fag lot 9",
		Type:   material.TypeRaw,
		State:  material.StateReceived,
	}

	var buf bytes.Buffer
	require.NoError(t, Label(&buf, m, "Carpat Lemn SA"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, LabelWidth, img.Bounds().Dx())
	assert.Equal(t, LabelHeight, img.Bounds().Dy())
}

func TestReportTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ReportTable(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Raport Trasabilitate")
	assert.Contains(t, out, "Materii Prime")
	assert.Contains(t, out, "Silvania (IKEA-1)")
	assert.NotContains(t, out, "Materiale Prelucrate")
}

func TestBOMTable(t *testing.T) {
	r := sampleReport()
	groups := bom.Classify([]*material.Material{r.Raw[0].Material})

	var buf bytes.Buffer
	require.NoError(t, BOMTable(&buf, r.Material, groups, bom.NewSupplierDirectory(nil)))

	out := buf.String()
	assert.Contains(t, out, "MAT-1")
	assert.Contains(t, out, "1 componente")
}
