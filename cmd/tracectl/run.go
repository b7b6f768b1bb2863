package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lumbertrace/internal/app"
	"lumbertrace/internal/domain/auth"
	"lumbertrace/internal/domain/bom"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
	"lumbertrace/internal/infrastructure/render"
	"lumbertrace/internal/infrastructure/snapshot"
)

func runBOM(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	res, err := a.Traceability.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	return render.BOMTable(cmd.OutOrStdout(), res.Root, res.Groups, res.Suppliers)
}

func runReport(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	report, err := a.Traceability.BuildReport(ctx, args[0])
	if err != nil {
		return err
	}
	if outputPath == "" {
		return render.ReportTable(cmd.OutOrStdout(), report)
	}

	return writeFile(outputPath, func(f *os.File) error {
		return render.ReportPDF(f, report)
	})
}

func runLabel(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	m, err := a.Materials.GetByID(ctx, args[0])
	if err != nil {
		return err
	}

	name, err := labelSupplierName(ctx, a.Suppliers, m)
	if err != nil {
		return err
	}

	path := outputPath
	if path == "" {
		path = m.ID + ".png"
	}
	if err := writeFile(path, func(f *os.File) error {
		return render.Label(f, m, name)
	}); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// supplierLister lists every supplier.
type supplierLister interface {
	All(ctx context.Context) ([]*supplier.Supplier, error)
}

// labelSupplierName returns the supplier line printed on a label, with the
// same id and placeholder fallbacks as reports.
func labelSupplierName(ctx context.Context, suppliers supplierLister, m *material.Material) (string, error) {
	if m.SupplierID == "" {
		return bom.Placeholder, nil
	}
	list, err := suppliers.All(ctx)
	if err != nil {
		return "", err
	}
	return bom.NewSupplierDirectory(list).Name(m.SupplierID), nil
}

func runExport(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
	path := outputPath
	if path == "" {
		path = snapshot.FileName(time.Now())
	}

	var stats snapshot.Stats
	err := writeFile(path, func(f *os.File) error {
		var err error
		stats, err = a.Snapshots.Export(ctx, f)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d suppliers, %d materials\n", path, stats.Suppliers, stats.Materials)
	return nil
}

func runImport(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	stats, err := a.Snapshots.Import(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "restored %d suppliers, %d materials\n", stats.Suppliers, stats.Materials)
	return nil
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

// writeFile creates path and removes it again when fn fails.
func writeFile(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
