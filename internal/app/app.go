// Package app wires configuration, storage and domain services together for
// the commands under cmd/.
package app

import (
	"context"
	"fmt"

	"lumbertrace/internal/config"
	"lumbertrace/internal/domain/auth"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
	"lumbertrace/internal/domain/traceability"
	"lumbertrace/internal/infrastructure/fixtures"
	"lumbertrace/internal/infrastructure/metrics"
	"lumbertrace/internal/infrastructure/snapshot"
	"lumbertrace/internal/infrastructure/storage"
	"lumbertrace/pkg/logger"
)

// App holds the opened backend and the services built on it.
type App struct {
	Config  *config.Config
	Log     *logger.Logger
	Backend *storage.Backend
	Metrics *metrics.Metrics

	Materials    *material.Service
	Suppliers    *supplier.Service
	Traceability *traceability.Service
	Snapshots    *snapshot.Service
}

// New opens the configured backend and builds the services.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	backend, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	log.Infow("storage opened", "driver", backend.Driver)

	m := metrics.New()
	materials := material.NewService(backend.Materials, backend.TxManager)
	suppliers := supplier.NewService(backend.Suppliers, backend.TxManager, materials)

	return &App{
		Config:       cfg,
		Log:          log,
		Backend:      backend,
		Metrics:      m,
		Materials:    materials,
		Suppliers:    suppliers,
		Traceability: traceability.NewService(materials, suppliers, traceability.WithRecorder(m)),
		Snapshots:    snapshot.NewService(materials, suppliers),
	}, nil
}

// SeedDemo loads the demo fixtures when the store is empty.
func (a *App) SeedDemo(ctx context.Context) (bool, error) {
	return fixtures.SeedIfEmpty(ctx, a.Backend, a.Materials, a.Suppliers)
}

// Auth returns the operator auth service, or nil when auth is disabled.
func (a *App) Auth() *auth.Service {
	if !a.Config.Auth.Enabled {
		return nil
	}
	jwtCfg := auth.DefaultJWTConfig(a.Config.Auth.JWTSecret)
	if a.Config.Auth.TokenTTL > 0 {
		jwtCfg.AccessTokenTTL = a.Config.Auth.TokenTTL
	}
	return auth.NewService(auth.NewJWTService(jwtCfg), a.Config.Auth.Operator, a.Config.Auth.PasswordHash)
}

// Close releases the backend.
func (a *App) Close() error {
	return a.Backend.Close()
}
