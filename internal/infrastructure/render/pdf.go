// Package render turns materials and traceability reports into printable
// artifacts: PDF reports, PNG labels and terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"lumbertrace/internal/domain/traceability"
)

const (
	pageMargin = 10.0
	lineHeight = 6.0
)

// Slate header color used on the title band and table heads.
var headerRGB = [3]int{51, 65, 85}

// ReportFileName returns Raport_Trasabilitate_<id>_<yyyy-mm-dd>.pdf.
func ReportFileName(materialID string, at time.Time) string {
	return fmt.Sprintf("Raport_Trasabilitate_%s_%s.pdf", materialID, at.UTC().Format("2006-01-02"))
}

// The core PDF fonts are cp1252, which lacks the Romanian breve and comma
// letters. They are printed without the mark.
var romanianFold = strings.NewReplacer(
	"ă", "a", "Ă", "A",
	"ș", "s", "Ș", "S", "ş", "s", "Ş", "S",
	"ț", "t", "Ț", "T", "ţ", "t", "Ţ", "T",
)

type pdfTable struct {
	title   string
	headers []string
	widths  []float64
	rows    [][]string
}

// ReportPDF writes r as an A4 PDF document.
func ReportPDF(w io.Writer, r *traceability.Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 15)

	translate := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string { return translate(romanianFold.Replace(s)) }

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 8,
			tr(fmt.Sprintf("Generat %s  |  Pagina %d", r.GeneratedAt.Format("2006-01-02 15:04 UTC"), pdf.PageNo())),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	pdf.SetFillColor(headerRGB[0], headerRGB[1], headerRGB[2])
	pdf.Rect(0, 0, pageWidth, 20, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(pageMargin, 6)
	pdf.CellFormat(pageWidth-2*pageMargin, 8,
		tr(fmt.Sprintf("Raport Trasabilitate: %s (%s)", r.Material.Name, r.Material.ID)),
		"", 0, "C", false, 0, "")
	pdf.SetY(26)
	pdf.SetTextColor(0, 0, 0)

	section(pdf, tr("Detalii Material Principal"))
	m := r.Material
	keyValue(pdf, tr, "Nume", m.Name)
	keyValue(pdf, tr, "ID", m.ID)
	keyValue(pdf, tr, "Tip", string(m.Type))
	keyValue(pdf, tr, "Stare", string(m.State))
	if m.Description != "" {
		keyValue(pdf, tr, "Descriere", m.Description)
	}
	if m.IsRaw() {
		keyValue(pdf, tr, "Furnizor", r.SupplierName)
		keyValue(pdf, tr, "Specie", m.Details.TreeSpeciesCommon)
		keyValue(pdf, tr, "Tara recoltarii", m.Details.CountryOfHarvest)
	} else {
		keyValue(pdf, tr, "Dimensiuni", m.Details.Dimensions)
		keyValue(pdf, tr, "Finisaj", m.Details.SurfaceFinish)
	}
	pdf.Ln(4)

	for _, t := range reportTables(r) {
		if len(t.rows) == 0 {
			continue
		}
		drawTable(pdf, tr, t)
	}

	section(pdf, tr("Totaluri"))
	keyValue(pdf, tr, "Greutate estimata materii prime (kg)", r.Totals.RawEstimatedWeightKg.String())
	keyValue(pdf, tr, "Greutate materiale prelucrate (kg)", r.Totals.ProcessedWeightKg.String())
	if r.Totals.Unparsed > 0 {
		keyValue(pdf, tr, "Greutati necitite", fmt.Sprint(r.Totals.Unparsed))
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func reportTables(r *traceability.Report) []pdfTable {
	raw := pdfTable{
		title:   "Materii Prime",
		headers: []string{"ID", "Nume", "Specie", "Origine", "Furnizor (IKEA ID)"},
		widths:  []float64{30, 50, 30, 30, 50},
	}
	for _, l := range r.Raw {
		raw.rows = append(raw.rows, []string{
			l.Material.ID,
			l.Material.Name,
			orPlaceholder(l.Material.Details.TreeSpeciesCommon),
			orPlaceholder(l.Material.Details.CountryOfHarvest),
			fmt.Sprintf("%s (%s)", l.SupplierName, l.SupplierIkeaID),
		})
	}

	processed := pdfTable{
		title:   "Materiale Prelucrate",
		headers: []string{"ID", "Nume", "Dimensiuni", "Finisaj", "Greutate (kg)"},
		widths:  []float64{30, 50, 40, 40, 30},
	}
	for _, l := range r.Processed {
		processed.rows = append(processed.rows, []string{
			l.Material.ID,
			l.Material.Name,
			orPlaceholder(l.Material.Details.Dimensions),
			orPlaceholder(l.Material.Details.SurfaceFinish),
			orPlaceholder(l.Material.Details.ProcessedWeightKg),
		})
	}

	other := pdfTable{
		title:   "Alte Componente",
		headers: []string{"ID", "Nume", "Tip"},
		widths:  []float64{40, 90, 60},
	}
	for _, l := range r.Other {
		other.rows = append(other.rows, []string{l.Material.ID, l.Material.Name, orPlaceholder(string(l.Material.Type))})
	}

	return []pdfTable{raw, processed, other}
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(headerRGB[0], headerRGB[1], headerRGB[2])
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}

func keyValue(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(65, lineHeight, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, lineHeight, tr(orPlaceholder(value)), "", "L", false)
}

func drawTable(pdf *fpdf.Fpdf, tr func(string) string, t pdfTable) {
	section(pdf, tr(t.title))

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(headerRGB[0], headerRGB[1], headerRGB[2])
		pdf.SetTextColor(255, 255, 255)
		for i, h := range t.headers {
			pdf.CellFormat(t.widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 8)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for n, row := range t.rows {
		if pdf.GetY()+lineHeight > pageHeight-bottom-15 {
			pdf.AddPage()
			header()
		}
		fill := n%2 == 1
		pdf.SetFillColor(241, 245, 249)
		for i, cell := range row {
			pdf.CellFormat(t.widths[i], lineHeight, tr(truncate(cell, t.widths[i])), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// truncate keeps cell text on one line for a column of width mm at 8pt.
func truncate(s string, width float64) string {
	limit := int(width / 1.7)
	r := []rune(s)
	if len(r) <= limit || limit < 2 {
		return s
	}
	return string(r[:limit-1]) + "…"
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
