package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"lumbertrace/internal/domain/bom"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/traceability"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F1F5F9")).Background(lipgloss.Color("#334155")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// BOMTable writes the components of root grouped by type.
func BOMTable(w io.Writer, root *material.Material, groups bom.Classification, dir bom.SupplierDirectory) error {
	t := newTable("Grupa", "ID", "Nume", "Stare", "Furnizor")
	add := func(group string, list []*material.Material) {
		for _, m := range list {
			t.Row(group, m.ID, m.Name, string(m.State), dir.Name(m.SupplierID))
		}
	}
	add("Materie prima", groups.Raw)
	add("Prelucrat", groups.Processed)
	add("Altele", groups.Other)

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n",
		titleStyle.Render(fmt.Sprintf("%s  %s", root.ID, root.Name)),
		t.Render(),
		mutedStyle.Render(fmt.Sprintf("%d componente", groups.Len())),
	)
	return err
}

// ReportTable writes a plain-terminal rendition of a traceability report.
func ReportTable(w io.Writer, r *traceability.Report) error {
	summary := newTable("Camp", "Valoare").
		Row("ID", r.Material.ID).
		Row("Nume", r.Material.Name).
		Row("Tip", string(r.Material.Type)).
		Row("Stare", string(r.Material.State)).
		Row("Furnizor", r.SupplierName).
		Row("Greutate materii prime (kg)", r.Totals.RawEstimatedWeightKg.String()).
		Row("Greutate prelucrate (kg)", r.Totals.ProcessedWeightKg.String()).
		Row("Generat", r.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	if _, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render("Raport Trasabilitate"), summary.Render()); err != nil {
		return err
	}

	for _, t := range reportTables(r) {
		if len(t.rows) == 0 {
			continue
		}
		tbl := newTable(t.headers...).Rows(t.rows...)
		if _, err := fmt.Fprintf(w, "%s\n%s\n", headerStyle.Render(t.title), tbl.Render()); err != nil {
			return err
		}
	}
	return nil
}
