package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// Store bundles the pool with the repositories built on it.
type Store struct {
	Pool      *Pool
	TxManager *TxManager
	Materials *MaterialRepo
	Suppliers *SupplierRepo
}

// Open connects to dsn, creates the tables when missing and wires the
// repositories.
func Open(ctx context.Context, cfg PoolConfig) (*Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	txm := NewTxManager(pool)
	return &Store{
		Pool:      pool,
		TxManager: txm,
		Materials: NewMaterialRepo(txm),
		Suppliers: NewSupplierRepo(txm),
	}, nil
}

// EnsureSchema applies schema.sql. Every statement is idempotent.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info(ctx, "postgres schema ready")
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// Count returns the number of stored materials and suppliers.
func (s *Store) Count(ctx context.Context) (materials, suppliers int, err error) {
	if materials, err = s.Materials.Count(ctx); err != nil {
		return 0, 0, err
	}
	if suppliers, err = s.Suppliers.Count(ctx); err != nil {
		return 0, 0, err
	}
	return materials, suppliers, nil
}

// Wipe deletes every material and supplier.
func (s *Store) Wipe(ctx context.Context) error {
	if _, err := s.TxManager.GetQuerier(ctx).Exec(ctx, "TRUNCATE materials, suppliers"); err != nil {
		return apperror.NewStorage("wipe", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.Pool.Close()
	return nil
}
