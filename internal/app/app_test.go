package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumbertrace/internal/config"
	"lumbertrace/pkg/logger"
)

func inMemoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Port = 8080
	cfg.Storage.Driver = config.DriverBadger
	cfg.Storage.Badger.InMemory = true
	return cfg
}

func TestNewSeedsDemoOnce(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, inMemoryConfig(), logger.NewNop())
	require.NoError(t, err)
	defer a.Close()

	seeded, err := a.SeedDemo(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = a.SeedDemo(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	res, err := a.Traceability.Resolve(ctx, "MAT-RAFT0005")
	require.NoError(t, err)
	ids := make([]string, 0, len(res.Components))
	for _, m := range res.Components {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"MAT-SCAN0003", "MAT-BUST0001", "MAT-RIGL0004", "MAT-BUST0002"}, ids)
}

func TestAuth(t *testing.T) {
	cfg := inMemoryConfig()
	a := &App{Config: cfg}
	assert.Nil(t, a.Auth())

	cfg.Auth = config.AuthConfig{
		Enabled:      true,
		JWTSecret:    "secret",
		TokenTTL:     time.Hour,
		Operator:     "operator",
		PasswordHash: "$2a$10$invalid",
	}
	assert.NotNil(t, a.Auth())
}
