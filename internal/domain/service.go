package domain

import (
	"context"
	"fmt"
	"time"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/core/id"
	"lumbertrace/internal/core/tx"
	"lumbertrace/internal/domain/filter"
	"lumbertrace/pkg/logger"
)

// RecordService provides upsert, lookup, delete and listing for a record type.
// Entity services embed it and register hooks for their own rules.
type RecordService[T Entity] struct {
	repo      Repository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]
	now       func() time.Time

	// entityName for error messages, idPrefix for generated ids
	entityName string
	idPrefix   string
}

// RecordServiceConfig configures the record service.
type RecordServiceConfig[T Entity] struct {
	Repo       Repository[T]
	TxManager  tx.Manager
	EntityName string
	IDPrefix   string
	Now        func() time.Time // defaults to time.Now
}

// NewRecordService creates a new record service.
func NewRecordService[T Entity](cfg RecordServiceConfig[T]) *RecordService[T] {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	txm := cfg.TxManager
	if txm == nil {
		txm = tx.Passthrough
	}
	return &RecordService[T]{
		repo:       cfg.Repo,
		txManager:  txm,
		hooks:      NewHookRegistry[T](),
		now:        now,
		entityName: cfg.EntityName,
		idPrefix:   cfg.IDPrefix,
	}
}

// Hooks returns the hook registry for external registration.
func (s *RecordService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// TxManager returns the transaction manager used by the service.
func (s *RecordService[T]) TxManager() tx.Manager {
	return s.txManager
}

func (s *RecordService[T]) normalizeValidationErr(err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *RecordService[T]) normalizeGetErr(err error, entityID string) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", entityID)
}

// Save creates or replaces a record.
//
//   - no id: a new id is generated and both timestamps are set to now
//   - id of a stored record: fields are replaced, id and createdAt are kept
//   - id not stored yet: created under that id, keeping a supplied createdAt
func (s *RecordService[T]) Save(ctx context.Context, e T) (T, error) {
	var zero T

	e.ApplyDefaults()
	if err := e.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}

	rec := e.Meta()
	now := s.now().UTC()
	created := false

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if rec.ID == "" {
			rec.ID = id.New(s.idPrefix)
			rec.CreatedAt = time.Time{}
		} else {
			stored, err := s.repo.GetByID(ctx, rec.ID)
			switch {
			case err == nil:
				rec.Touch(*stored.Meta(), now)
				if err := s.hooks.Run(ctx, BeforeSave, e); err != nil {
					return err
				}
				if err := s.repo.Update(ctx, e); err != nil {
					return fmt.Errorf("update %s: %w", s.entityName, err)
				}
				return nil
			case !apperror.IsNotFound(err):
				return fmt.Errorf("load %s: %w", s.entityName, err)
			}
		}

		rec.Stamp(now)
		created = true
		if err := s.hooks.Run(ctx, BeforeSave, e); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	if err := s.hooks.Run(ctx, AfterSave, e); err != nil {
		logger.Warn(ctx, "after-save hook failed", "entity", s.entityName, "id", rec.ID, "error", err)
	}

	logger.Debug(ctx, "record saved", "entity", s.entityName, "id", rec.ID, "created", created)
	return e, nil
}

// GetByID retrieves a record by ID.
func (s *RecordService[T]) GetByID(ctx context.Context, entityID string) (T, error) {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return e, s.normalizeGetErr(err, entityID)
	}
	return e, nil
}

// Delete removes a record. Before-delete hooks run in the same transaction.
func (s *RecordService[T]) Delete(ctx context.Context, entityID string) error {
	var deleted T

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		e, err := s.repo.GetByID(ctx, entityID)
		if err != nil {
			return s.normalizeGetErr(err, entityID)
		}
		if err := s.hooks.Run(ctx, BeforeDelete, e); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		deleted = e
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterDelete, deleted); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", s.entityName, "id", entityID, "error", err)
	}
	return nil
}

// List returns records matching f, newest first.
func (s *RecordService[T]) List(ctx context.Context, f ListFilter) (ListResult[T], error) {
	result := ListResult[T]{Limit: f.Limit, Offset: f.Offset, Items: []T{}}

	var expr *filter.Expression
	if f.Expression != "" {
		compiled, err := filter.Compile(f.Expression)
		if err != nil {
			return result, err
		}
		expr = compiled
	}

	items, err := s.repo.List(ctx, f)
	if err != nil {
		return result, fmt.Errorf("list %s: %w", s.entityName, err)
	}

	if expr != nil {
		kept := items[:0]
		for _, item := range items {
			if expr.Matches(Fields(item)) {
				kept = append(kept, item)
			}
		}
		items = kept
	}

	result.TotalCount = int64(len(items))
	result.Items = paginate(items, f.Limit, f.Offset)
	return result, nil
}

// All returns every stored record, newest first.
func (s *RecordService[T]) All(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.entityName, err)
	}
	return items, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
