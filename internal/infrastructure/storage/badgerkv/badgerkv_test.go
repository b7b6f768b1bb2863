package badgerkv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/domain"
	"lumbertrace/internal/domain/filter"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newMaterial(id string, created time.Time) *material.Material {
	return &material.Material{
		Record:     entity.Record{ID: id, CreatedAt: created, UpdatedAt: created},
		Name:       "Material " + id,
		Type:       material.TypeRaw,
		State:      material.StateReceived,
		Components: []string{},
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestMaterialRepo_CRUD(t *testing.T) {
	db := openTestDB(t)
	repo := NewMaterialRepo(db)
	ctx := context.Background()
	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	m := newMaterial("MAT-1", now)
	m.Components = []string{"MAT-2", "ghost"}
	m.Details.CountryOfHarvest = "Romania"
	require.NoError(t, repo.Create(ctx, m))

	err := repo.Create(ctx, m)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)

	got, err := repo.GetByID(ctx, "MAT-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"MAT-2", "ghost"}, got.Components)
	assert.Equal(t, "Romania", got.Details.CountryOfHarvest)
	assert.True(t, now.Equal(got.CreatedAt))

	got.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, "MAT-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)

	exists, err := repo.Exists(ctx, "MAT-1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "MAT-1"))
	_, err = repo.GetByID(ctx, "MAT-1")
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(repo.Delete(ctx, "MAT-1")))
	assert.True(t, apperror.IsNotFound(repo.Update(ctx, got)))
}

func TestMaterialRepo_List(t *testing.T) {
	db := openTestDB(t)
	repo := NewMaterialRepo(db)
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2024, 4, d, 12, 0, 0, 0, time.UTC) }

	a := newMaterial("MAT-A", day(1))
	a.Name = "Bustean molid"
	b := newMaterial("MAT-B", day(2))
	b.State = material.StateDelivered
	c := newMaterial("MAT-C", day(3))
	for _, m := range []*material.Material{a, b, c} {
		require.NoError(t, repo.Create(ctx, m))
	}

	all, err := repo.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "MAT-C", all[0].ID)
	assert.Equal(t, "MAT-A", all[2].ID)

	found, err := repo.List(ctx, domain.ListFilter{Search: "MOLID"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "MAT-A", found[0].ID)

	first, second := day(1), day(2)
	from, to := domain.DayRange(&first, &second, time.UTC)
	ranged, err := repo.List(ctx, domain.ListFilter{CreatedFrom: from, CreatedTo: to})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	delivered, err := repo.List(ctx, domain.ListFilter{AdvancedFilters: []filter.Item{
		{Field: "stare", Operator: filter.Equal, Value: "Livrat"},
	}})
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, "MAT-B", delivered[0].ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMaterialRepo_DetachSupplier(t *testing.T) {
	db := openTestDB(t)
	repo := NewMaterialRepo(db)
	ctx := context.Background()

	for i, sup := range []string{"SUP-1", "SUP-2", "SUP-1"} {
		m := newMaterial("MAT-"+string(rune('A'+i)), time.Now())
		m.SupplierID = sup
		require.NoError(t, repo.Create(ctx, m))
	}

	n, err := repo.DetachSupplier(ctx, "SUP-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	a, err := repo.GetByID(ctx, "MAT-A")
	require.NoError(t, err)
	assert.Empty(t, a.SupplierID)
	b, err := repo.GetByID(ctx, "MAT-B")
	require.NoError(t, err)
	assert.Equal(t, "SUP-2", b.SupplierID)
}

func TestTxManager_RollsBack(t *testing.T) {
	db := openTestDB(t)
	repo := NewSupplierRepo(db)
	txm := NewTxManager(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
		s := &supplier.Supplier{Record: entity.Record{ID: "SUP-1"}, Name: "Silvania"}
		if err := repo.Create(ctx, s); err != nil {
			return err
		}
		exists, err := repo.Exists(ctx, "SUP-1")
		require.NoError(t, err)
		assert.True(t, exists, "visible inside the transaction")

		return txm.RunInTransaction(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	exists, err := repo.Exists(ctx, "SUP-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSupplierDelete_DetachesInOneTransaction(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	txm := NewTxManager(db)
	materials := material.NewService(NewMaterialRepo(db), txm)
	suppliers := supplier.NewService(NewSupplierRepo(db), txm, materials)

	sup, err := suppliers.Save(ctx, &supplier.Supplier{Name: "Silvania"})
	require.NoError(t, err)
	m, err := materials.Save(ctx, &material.Material{Name: "Bustean", SupplierID: sup.ID})
	require.NoError(t, err)

	require.NoError(t, suppliers.Delete(ctx, sup.ID))

	reloaded, err := materials.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.SupplierID)
	_, err = suppliers.GetByID(ctx, sup.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestWipe(t *testing.T) {
	db := openTestDB(t)
	repo := NewSupplierRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &supplier.Supplier{Record: entity.Record{ID: "SUP-1"}, Name: "x"}))
	require.NoError(t, db.Ping(ctx))
	require.NoError(t, db.Wipe(ctx))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
