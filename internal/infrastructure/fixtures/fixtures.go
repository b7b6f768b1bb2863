// Package fixtures seeds a store with demo suppliers and materials.
package fixtures

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
	"lumbertrace/pkg/logger"
)

//go:embed demo.yaml
var demoYAML []byte

// Set is a parsed fixture file.
type Set struct {
	Suppliers []*supplier.Supplier `yaml:"suppliers"`
	Materials []*material.Material `yaml:"materials"`
}

// Saver persists one record.
type Saver[T any] interface {
	Save(ctx context.Context, e T) (T, error)
}

// Demo returns the embedded demo fixtures. The last material has a
// diamond-shaped bill of materials: both of its parts share a raw log.
func Demo() (*Set, error) {
	return Parse(demoYAML)
}

// Parse decodes a fixture file.
func Parse(data []byte) (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &set, nil
}

// Seed saves every supplier, then every material.
func Seed(ctx context.Context, set *Set, materials Saver[*material.Material], suppliers Saver[*supplier.Supplier]) error {
	for _, s := range set.Suppliers {
		if _, err := suppliers.Save(ctx, s); err != nil {
			return fmt.Errorf("seed supplier %s: %w", s.ID, err)
		}
	}
	for _, m := range set.Materials {
		if _, err := materials.Save(ctx, m); err != nil {
			return fmt.Errorf("seed material %s: %w", m.ID, err)
		}
	}

	logger.Info(ctx, "fixtures seeded", "suppliers", len(set.Suppliers), "materials", len(set.Materials))
	return nil
}

// EmptyChecker reports whether a store holds no records.
type EmptyChecker interface {
	IsEmpty(ctx context.Context) (bool, error)
}

// SeedIfEmpty seeds the demo fixtures when store is empty. It reports
// whether anything was written.
func SeedIfEmpty(ctx context.Context, store EmptyChecker, materials Saver[*material.Material], suppliers Saver[*supplier.Supplier]) (bool, error) {
	empty, err := store.IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		logger.Debug(ctx, "store not empty, skipping fixtures")
		return false, nil
	}

	set, err := Demo()
	if err != nil {
		return false, err
	}
	if err := Seed(ctx, set, materials, suppliers); err != nil {
		return false, err
	}
	return true, nil
}
