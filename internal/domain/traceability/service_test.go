package traceability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
)

type fakeMaterials struct {
	all     []*material.Material
	extra   map[string]*material.Material
	listErr error
}

func (f *fakeMaterials) All(ctx context.Context) ([]*material.Material, error) {
	return f.all, f.listErr
}

func (f *fakeMaterials) GetByID(ctx context.Context, id string) (*material.Material, error) {
	if m, ok := f.extra[id]; ok {
		return m, nil
	}
	return nil, apperror.NewNotFound("material", id)
}

type fakeSuppliers struct {
	all []*supplier.Supplier
}

func (f *fakeSuppliers) All(ctx context.Context) ([]*supplier.Supplier, error) {
	return f.all, nil
}

type countingRecorder struct {
	mu    sync.Mutex
	calls []int
}

func (r *countingRecorder) ObserveResolution(components int, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, components)
}

func newMat(id string, typ material.Type, supplierID string, d material.Details, components ...string) *material.Material {
	return &material.Material{
		Record:     entity.Record{ID: id},
		Name:       "Material " + id,
		Type:       typ,
		State:      material.StateReceived,
		SupplierID: supplierID,
		Components: components,
		Details:    d,
	}
}

func fixture() (*fakeMaterials, *fakeSuppliers) {
	materials := &fakeMaterials{all: []*material.Material{
		newMat("MAT-A", material.TypeProcessed, "", material.Details{ProcessedWeightKg: "800"}, "MAT-B", "MAT-C"),
		newMat("MAT-B", material.TypeProcessed, "", material.Details{ProcessedWeightKg: "450,5"}, "MAT-D"),
		newMat("MAT-C", material.TypeProcessed, "", material.Details{ProcessedWeightKg: "cca 300"}, "MAT-D", "ghost"),
		newMat("MAT-D", material.TypeRaw, "SUP-1", material.Details{EstimatedWeightKg: "1200 kg"}),
		newMat("MAT-E", material.TypeRaw, "SUP-404", material.Details{}, "MAT-E"),
	}}
	suppliers := &fakeSuppliers{all: []*supplier.Supplier{
		{Record: entity.Record{ID: "SUP-1"}, Name: "Silvania SRL", IkeaSupplierID: "IK-1"},
	}}
	return materials, suppliers
}

func TestResolve_Diamond(t *testing.T) {
	materials, suppliers := fixture()
	rec := &countingRecorder{}
	svc := NewService(materials, suppliers, WithRecorder(rec))

	res, err := svc.Resolve(context.Background(), "MAT-A")
	require.NoError(t, err)

	var got []string
	for _, m := range res.Components {
		got = append(got, m.ID)
	}
	assert.Equal(t, []string{"MAT-B", "MAT-D", "MAT-C"}, got)
	assert.Len(t, res.Groups.Raw, 1)
	assert.Len(t, res.Groups.Processed, 2)
	assert.Equal(t, []int{3}, rec.calls)
}

func TestResolve_FallsBackToGetByID(t *testing.T) {
	materials, suppliers := fixture()
	materials.extra = map[string]*material.Material{
		"MAT-NEW": newMat("MAT-NEW", material.TypeProcessed, "", material.Details{}, "MAT-D"),
	}
	svc := NewService(materials, suppliers)

	res, err := svc.Resolve(context.Background(), "MAT-NEW")
	require.NoError(t, err)
	require.Len(t, res.Components, 1)
	assert.Equal(t, "MAT-D", res.Components[0].ID)
}

func TestResolve_NotFound(t *testing.T) {
	materials, suppliers := fixture()
	svc := NewService(materials, suppliers)

	_, err := svc.Resolve(context.Background(), "MAT-MISSING")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestResolve_StorageError(t *testing.T) {
	materials, suppliers := fixture()
	materials.listErr = errors.New("disk gone")
	svc := NewService(materials, suppliers)

	_, err := svc.Resolve(context.Background(), "MAT-A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestBuildReport(t *testing.T) {
	materials, suppliers := fixture()
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	svc := NewService(materials, suppliers, WithClock(func() time.Time { return now }))

	r, err := svc.BuildReport(context.Background(), "MAT-A")
	require.NoError(t, err)

	assert.Equal(t, "MAT-A", r.Material.ID)
	assert.Nil(t, r.Supplier, "processed root has no own supplier")
	assert.Equal(t, "-", r.SupplierName)
	assert.Equal(t, now, r.GeneratedAt)

	require.Len(t, r.Raw, 1)
	assert.Equal(t, "Silvania SRL", r.Raw[0].SupplierName)
	assert.Equal(t, "IK-1", r.Raw[0].SupplierIkeaID)
	require.Len(t, r.Processed, 2)
	assert.Equal(t, "-", r.Processed[0].SupplierName)

	assert.True(t, decimal.RequireFromString("1200").Equal(r.Totals.RawEstimatedWeightKg))
	assert.True(t, decimal.RequireFromString("450.5").Equal(r.Totals.ProcessedWeightKg))
	assert.Equal(t, 1, r.Totals.Unparsed)
}

func TestBuildReport_RawRootWithUnknownSupplier(t *testing.T) {
	materials, suppliers := fixture()
	svc := NewService(materials, suppliers)

	r, err := svc.BuildReport(context.Background(), "MAT-E")
	require.NoError(t, err)

	assert.Nil(t, r.Supplier)
	assert.Equal(t, "SUP-404", r.SupplierName)
	assert.Empty(t, r.Raw, "self reference is excluded")
	assert.Empty(t, r.Processed)
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "1200", want: "1200", ok: true},
		{in: " 1200 kg ", want: "1200", ok: true},
		{in: "850,5", want: "850.5", ok: true},
		{in: "1 200", want: "1200", ok: true},
		{in: "-5", ok: false},
		{in: "about a ton", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseWeight(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			}
		})
	}
}
