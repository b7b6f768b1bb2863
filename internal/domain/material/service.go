package material

import (
	"context"
	"fmt"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/core/id"
	"lumbertrace/internal/core/tx"
	"lumbertrace/internal/domain"
	"lumbertrace/internal/domain/filter"
	"lumbertrace/pkg/logger"
)

// Service provides business logic for materials.
type Service struct {
	*domain.RecordService[*Material]
	repo Repository
}

// NewService creates a new material service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Material]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "material",
		IDPrefix:   id.MaterialPrefix,
	})

	return &Service{
		RecordService: base,
		repo:          repo,
	}
}

// ListFilter narrows the material list.
type ListFilter struct {
	domain.ListFilter

	// State keeps only materials in this handling stage
	State State
}

// List returns materials matching f, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) (domain.ListResult[*Material], error) {
	base := f.ListFilter
	if f.State != "" {
		base.AdvancedFilters = append(base.AdvancedFilters, filter.Item{
			Field:    "stare",
			Operator: filter.Equal,
			Value:    string(f.State),
		})
	}
	return s.RecordService.List(ctx, base)
}

// ResolveScan returns the material a scanned label points to.
func (s *Service) ResolveScan(ctx context.Context, payload string) (*Material, error) {
	materialID, err := ParseScanPayload(payload)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, materialID)
}

// AddComponent links the scanned material into parentID's component list.
// Linking a material to itself is rejected and a repeated link is a no-op.
func (s *Service) AddComponent(ctx context.Context, parentID, scanned string) (*Material, error) {
	componentID, err := ParseScanPayload(scanned)
	if err != nil {
		return nil, err
	}
	if componentID == parentID {
		return nil, apperror.NewSelfComponent(parentID)
	}

	var parent *Material
	err = s.TxManager().RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.GetByID(ctx, parentID)
		if err != nil {
			return err
		}

		exists, err := s.repo.Exists(ctx, componentID)
		if err != nil {
			return fmt.Errorf("check component: %w", err)
		}
		if !exists {
			return apperror.NewNotFound("material", componentID).
				WithDetail("role", "component")
		}

		parent = p
		if !p.AddComponent(componentID) {
			return nil
		}
		_, err = s.Save(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "component linked", "material_id", parentID, "component_id", componentID)
	return parent, nil
}

// RemoveComponent unlinks componentID from parentID. Unknown links are a no-op.
func (s *Service) RemoveComponent(ctx context.Context, parentID, componentID string) (*Material, error) {
	var parent *Material
	err := s.TxManager().RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.GetByID(ctx, parentID)
		if err != nil {
			return err
		}
		parent = p
		if !p.RemoveComponent(componentID) {
			return nil
		}
		_, err = s.Save(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return parent, nil
}

// DetachSupplier clears references to a deleted supplier.
func (s *Service) DetachSupplier(ctx context.Context, supplierID string) (int, error) {
	n, err := s.repo.DetachSupplier(ctx, supplierID)
	if err != nil {
		return 0, fmt.Errorf("detach supplier %s: %w", supplierID, err)
	}
	if n > 0 {
		logger.Info(ctx, "supplier detached from materials", "supplier_id", supplierID, "materials", n)
	}
	return n, nil
}
