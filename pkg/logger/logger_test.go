package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appctx "lumbertrace/internal/core/context"
)

func TestWithContext_AddsTraceAndOperator(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{zap.New(core).Sugar()}

	ctx := appctx.WithTrace(context.Background(), appctx.NewTraceContext("t-1", "r-1"))
	ctx = appctx.WithOperator(ctx, &appctx.Operator{Username: "ana"})
	ctx = WithLogger(ctx, l)

	Info(ctx, "material saved", "material_id", "MAT-1")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "t-1", fields["trace_id"])
	assert.Equal(t, "r-1", fields["request_id"])
	assert.Equal(t, "ana", fields["operator"])
	assert.Equal(t, "MAT-1", fields["material_id"])
}

func TestPrintfAdapter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{zap.New(core).Sugar()}

	p := l.WithComponent("badger").AsPrintf()
	p.Warningf("value log %d rewritten\n", 3)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "value log 3 rewritten", logs.All()[0].Message)
	assert.Equal(t, "badger", logs.All()[0].ContextMap()["component"])
}

func TestNew_FallsBackToInfo(t *testing.T) {
	l, err := New(Config{Level: "nonsense", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zap.InfoLevel))
}
