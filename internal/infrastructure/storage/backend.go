// Package storage selects and opens the configured persistence backend.
package storage

import (
	"context"
	"fmt"

	"lumbertrace/internal/config"
	"lumbertrace/internal/core/tx"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
	"lumbertrace/internal/infrastructure/storage/badgerkv"
	"lumbertrace/internal/infrastructure/storage/postgres"
	"lumbertrace/pkg/logger"
)

// Backend is an open store with its repositories.
type Backend struct {
	Driver    string
	Materials material.Repository
	Suppliers supplier.Repository
	TxManager tx.Manager

	ping  func(ctx context.Context) error
	count func(ctx context.Context) (int, int, error)
	wipe  func(ctx context.Context) error
	close func() error
}

// Open opens the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		return openBadger(cfg.Badger, log)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Postgres)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func openBadger(cfg config.BadgerConfig, log *logger.Logger) (*Backend, error) {
	bcfg := badgerkv.DefaultConfig(cfg.Path)
	if cfg.InMemory {
		bcfg = badgerkv.InMemoryConfig()
	}
	bcfg.GCInterval = cfg.GCInterval
	bcfg.Logger = log

	db, err := badgerkv.Open(bcfg)
	if err != nil {
		return nil, err
	}
	return NewBadger(db), nil
}

// NewBadger wraps an already open badger database.
func NewBadger(db *badgerkv.DB) *Backend {
	materials := badgerkv.NewMaterialRepo(db)
	suppliers := badgerkv.NewSupplierRepo(db)

	return &Backend{
		Driver:    config.DriverBadger,
		Materials: materials,
		Suppliers: suppliers,
		TxManager: badgerkv.NewTxManager(db),
		ping:      db.Ping,
		count: func(ctx context.Context) (int, int, error) {
			m, err := materials.Count(ctx)
			if err != nil {
				return 0, 0, err
			}
			s, err := suppliers.Count(ctx)
			if err != nil {
				return 0, 0, err
			}
			return m, s, nil
		},
		wipe:  db.Wipe,
		close: db.Close,
	}
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig) (*Backend, error) {
	pcfg := postgres.DefaultPoolConfig(cfg.DSN)
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	store, err := postgres.Open(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	return &Backend{
		Driver:    config.DriverPostgres,
		Materials: store.Materials,
		Suppliers: store.Suppliers,
		TxManager: store.TxManager,
		ping:      store.Ping,
		count:     store.Count,
		wipe:      store.Wipe,
		close:     store.Close,
	}, nil
}

// Ping checks the backend is reachable.
func (b *Backend) Ping(ctx context.Context) error { return b.ping(ctx) }

// Count returns the number of stored materials and suppliers.
func (b *Backend) Count(ctx context.Context) (materials, suppliers int, err error) {
	return b.count(ctx)
}

// IsEmpty reports whether neither materials nor suppliers exist.
func (b *Backend) IsEmpty(ctx context.Context) (bool, error) {
	m, s, err := b.count(ctx)
	if err != nil {
		return false, err
	}
	return m == 0 && s == 0, nil
}

// Wipe removes all data.
func (b *Backend) Wipe(ctx context.Context) error { return b.wipe(ctx) }

// Close releases the backend.
func (b *Backend) Close() error { return b.close() }
