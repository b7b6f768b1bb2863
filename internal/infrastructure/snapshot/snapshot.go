// Package snapshot exports and imports the whole store as a zstd-compressed
// JSON archive.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"

	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
	"lumbertrace/pkg/logger"
)

// Version of the archive layout.
const Version = 1

// FileExtension is appended to archive file names.
const FileExtension = ".json.zst"

// Archive is the decoded archive content.
type Archive struct {
	Version    int                  `json:"version"`
	ExportedAt time.Time            `json:"exportedAt"`
	Materials  []*material.Material `json:"materials"`
	Suppliers  []*supplier.Supplier `json:"suppliers"`
}

// Store is what the archive reads from and writes to.
type Store[T any] interface {
	All(ctx context.Context) ([]T, error)
	Save(ctx context.Context, e T) (T, error)
}

// Stats counts imported records.
type Stats struct {
	Materials int `json:"materials"`
	Suppliers int `json:"suppliers"`
}

// Service builds and restores archives.
type Service struct {
	materials Store[*material.Material]
	suppliers Store[*supplier.Supplier]
	now       func() time.Time
}

// NewService creates a snapshot service.
func NewService(materials Store[*material.Material], suppliers Store[*supplier.Supplier]) *Service {
	return &Service{materials: materials, suppliers: suppliers, now: time.Now}
}

// Export writes a compressed archive of every record to w.
func (s *Service) Export(ctx context.Context, w io.Writer) (Stats, error) {
	materials, err := s.materials.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load materials: %w", err)
	}
	suppliers, err := s.suppliers.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load suppliers: %w", err)
	}

	archive := Archive{
		Version:    Version,
		ExportedAt: s.now().UTC(),
		Materials:  materials,
		Suppliers:  suppliers,
	}

	if err := Encode(w, &archive); err != nil {
		return Stats{}, err
	}

	stats := Stats{Materials: len(materials), Suppliers: len(suppliers)}
	logger.Info(ctx, "snapshot exported", "materials", stats.Materials, "suppliers", stats.Suppliers)
	return stats, nil
}

// Import reads an archive from r and upserts every record. Suppliers go
// first so material references resolve as soon as they land.
func (s *Service) Import(ctx context.Context, r io.Reader) (Stats, error) {
	archive, err := Decode(r)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, sup := range archive.Suppliers {
		if _, err := s.suppliers.Save(ctx, sup); err != nil {
			return stats, fmt.Errorf("import supplier %s: %w", sup.ID, err)
		}
		stats.Suppliers++
	}
	for _, m := range archive.Materials {
		if _, err := s.materials.Save(ctx, m); err != nil {
			return stats, fmt.Errorf("import material %s: %w", m.ID, err)
		}
		stats.Materials++
	}

	logger.Info(ctx, "snapshot imported",
		"materials", stats.Materials,
		"suppliers", stats.Suppliers,
		"exported_at", archive.ExportedAt,
	)
	return stats, nil
}

// Encode writes archive as zstd-compressed JSON.
func Encode(w io.Writer, archive *Archive) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}

	if err := json.NewEncoder(enc).Encode(archive); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode archive: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush archive: %w", err)
	}
	return nil
}

// Decode reads a zstd-compressed JSON archive.
func Decode(r io.Reader) (*Archive, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	var archive Archive
	if err := json.NewDecoder(dec).Decode(&archive); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	if archive.Version != Version {
		return nil, fmt.Errorf("unsupported archive version %d", archive.Version)
	}
	return &archive, nil
}

// FileName returns the default archive name for t.
func FileName(t time.Time) string {
	return "lumbertrace_backup_" + t.UTC().Format("20060102-150405") + FileExtension
}
