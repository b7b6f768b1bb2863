// Package traceability assembles the bill-of-materials view and the
// traceability report for a material from a fresh storage snapshot.
// Results are computed per request and never stored.
package traceability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/domain/bom"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
	"lumbertrace/pkg/logger"
)

var tracer = otel.Tracer("lumbertrace/traceability")

// MaterialSource reads materials.
type MaterialSource interface {
	All(ctx context.Context) ([]*material.Material, error)
	GetByID(ctx context.Context, id string) (*material.Material, error)
}

// SupplierSource reads suppliers.
type SupplierSource interface {
	All(ctx context.Context) ([]*supplier.Supplier, error)
}

// Recorder observes resolutions (metrics). Optional.
type Recorder interface {
	ObserveResolution(components int, elapsed time.Duration)
}

// Service resolves and reports material traceability.
type Service struct {
	materials MaterialSource
	suppliers SupplierSource
	recorder  Recorder
	now       func() time.Time
}

// Option configures Service.
type Option func(*Service)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new traceability service.
func NewService(materials MaterialSource, suppliers SupplierSource, opts ...Option) *Service {
	s := &Service{
		materials: materials,
		suppliers: suppliers,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolution is a material with its resolved components.
type Resolution struct {
	Root       *material.Material    `json:"material"`
	Components []*material.Material  `json:"components"`
	Groups     bom.Classification    `json:"groups"`
	Suppliers  bom.SupplierDirectory `json:"-"`
}

// Resolve loads a snapshot and resolves materialID's components.
func (s *Service) Resolve(ctx context.Context, materialID string) (*Resolution, error) {
	ctx, span := tracer.Start(ctx, "traceability.resolve")
	defer span.End()
	span.SetAttributes(attribute.String("material.id", materialID))

	started := time.Now()

	var (
		materials []*material.Material
		suppliers []*supplier.Supplier
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		materials, err = s.materials.All(gctx)
		if err != nil {
			return fmt.Errorf("load materials: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		suppliers, err = s.suppliers.All(gctx)
		if err != nil {
			return fmt.Errorf("load suppliers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	idx := bom.NewIndex(materials)
	root, ok := idx[materialID]
	if !ok {
		// The snapshot may be older than a material saved a moment ago.
		fetched, err := s.materials.GetByID(ctx, materialID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.NewNotFound("material", materialID)
			}
			return nil, err
		}
		root = fetched
	}

	components := idx.Resolve(root)
	res := &Resolution{
		Root:       root,
		Components: components,
		Groups:     bom.Classify(components),
		Suppliers:  bom.NewSupplierDirectory(suppliers),
	}

	span.SetAttributes(
		attribute.Int("bom.components", len(components)),
		attribute.Int("bom.raw", len(res.Groups.Raw)),
		attribute.Int("bom.processed", len(res.Groups.Processed)),
	)
	if s.recorder != nil {
		s.recorder.ObserveResolution(len(components), time.Since(started))
	}
	logger.Debug(ctx, "bill of materials resolved", "material_id", materialID, "components", len(components))

	return res, nil
}
