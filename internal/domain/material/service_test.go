package material

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/core/entity"
	"lumbertrace/internal/core/tx"
	"lumbertrace/internal/domain"
	"lumbertrace/internal/domain/filter"
)

// memRepo is a map-backed Repository.
type memRepo struct {
	items map[string]*Material
}

func newMemRepo(seed ...*Material) *memRepo {
	r := &memRepo{items: map[string]*Material{}}
	for _, m := range seed {
		r.items[m.ID] = m.Clone()
	}
	return r
}

func (r *memRepo) Create(ctx context.Context, m *Material) error {
	r.items[m.ID] = m.Clone()
	return nil
}

func (r *memRepo) Update(ctx context.Context, m *Material) error {
	if _, ok := r.items[m.ID]; !ok {
		return apperror.NewNotFound("material", m.ID)
	}
	r.items[m.ID] = m.Clone()
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*Material, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, apperror.NewNotFound("material", id)
	}
	return m.Clone(), nil
}

func (r *memRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memRepo) List(ctx context.Context, f domain.ListFilter) ([]*Material, error) {
	var out []*Material
	for _, m := range r.items {
		if f.Search != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(f.Search)) {
			continue
		}
		if !f.InRange(m.CreatedAt) {
			continue
		}
		ok, err := filter.Match(f.AdvancedFilters, domain.Fields(m))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) DetachSupplier(ctx context.Context, supplierID string) (int, error) {
	n := 0
	for _, m := range r.items {
		if m.SupplierID == supplierID {
			m.SupplierID = ""
			n++
		}
	}
	return n, nil
}

func stored(id string, typ Type, created time.Time, components ...string) *Material {
	return &Material{
		Record:     entity.Record{ID: id, CreatedAt: created, UpdatedAt: created},
		Name:       "Material " + id,
		Type:       typ,
		State:      StateReceived,
		Components: components,
	}
}

func TestSave_NewGetsDefaultsAndID(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, tx.Passthrough)

	m, err := svc.Save(context.Background(), &Material{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(m.ID, "MAT-"))
	assert.Equal(t, DefaultName, m.Name)
	assert.Equal(t, TypeRaw, m.Type)
	assert.Equal(t, StateReceived, m.State)
	assert.NotNil(t, m.Components)
	assert.False(t, m.CreatedAt.IsZero())
	assert.Equal(t, m.CreatedAt, m.UpdatedAt)
	assert.Contains(t, repo.items, m.ID)
}

func TestSave_UpdateKeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	repo := newMemRepo(stored("MAT-1", TypeRaw, created))
	svc := NewService(repo, tx.Passthrough)

	in := &Material{Record: entity.Record{ID: "MAT-1"}, Name: "Bustean stejar", State: StateInProgress}
	m, err := svc.Save(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, created, m.CreatedAt)
	assert.True(t, m.UpdatedAt.After(created))
	assert.Equal(t, "Bustean stejar", repo.items["MAT-1"].Name)
	assert.Equal(t, StateInProgress, repo.items["MAT-1"].State)
}

func TestSave_UnknownIDCreatesWithThatID(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, tx.Passthrough)
	created := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	m, err := svc.Save(context.Background(), &Material{Record: entity.Record{ID: "MAT-LEGACY", CreatedAt: created}})
	require.NoError(t, err)

	assert.Equal(t, "MAT-LEGACY", m.ID)
	assert.Equal(t, created, m.CreatedAt)
}

func TestSave_Validation(t *testing.T) {
	svc := NewService(newMemRepo(), tx.Passthrough)

	_, err := svc.Save(context.Background(), &Material{Type: "Plastic"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Save(context.Background(), &Material{Details: Details{ForestType: "Desert"}})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestAddComponent(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name     string
		payload  string
		wantCode string
		want     []string
	}{
		{name: "json payload", payload: `{"id":"MAT-2"}`, want: []string{"MAT-2"}},
		{name: "raw id", payload: "  MAT-2 \n", want: []string{"MAT-2"}},
		{name: "already linked", payload: "MAT-3", want: []string{"MAT-3"}},
		{name: "self", payload: `{"id":"MAT-1"}`, wantCode: apperror.CodeSelfComponent},
		{name: "unknown", payload: "MAT-404", wantCode: apperror.CodeNotFound},
		{name: "empty", payload: "   ", wantCode: apperror.CodeInvalidScan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := []string{}
			if tt.name == "already linked" {
				components = []string{"MAT-3"}
			}
			repo := newMemRepo(
				stored("MAT-1", TypeProcessed, now, components...),
				stored("MAT-2", TypeRaw, now),
				stored("MAT-3", TypeRaw, now),
			)
			svc := NewService(repo, tx.Passthrough)

			m, err := svc.AddComponent(context.Background(), "MAT-1", tt.payload)
			if tt.wantCode != "" {
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok, "got %v", err)
				assert.Equal(t, tt.wantCode, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Components)
			assert.Equal(t, tt.want, repo.items["MAT-1"].Components)
		})
	}
}

func TestRemoveComponent(t *testing.T) {
	now := time.Now().UTC()
	repo := newMemRepo(stored("MAT-1", TypeProcessed, now, "MAT-2", "MAT-3", "MAT-2"))
	svc := NewService(repo, tx.Passthrough)

	m, err := svc.RemoveComponent(context.Background(), "MAT-1", "MAT-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"MAT-3"}, m.Components)

	m, err = svc.RemoveComponent(context.Background(), "MAT-1", "MAT-404")
	require.NoError(t, err)
	assert.Equal(t, []string{"MAT-3"}, m.Components)

	_, err = svc.RemoveComponent(context.Background(), "MAT-404", "MAT-3")
	assert.True(t, apperror.IsNotFound(err))
}

func TestResolveScan(t *testing.T) {
	repo := newMemRepo(stored("MAT-1", TypeRaw, time.Now()))
	svc := NewService(repo, tx.Passthrough)

	m, err := svc.ResolveScan(context.Background(), `{"id":"MAT-1"}`)
	require.NoError(t, err)
	assert.Equal(t, "MAT-1", m.ID)

	_, err = svc.ResolveScan(context.Background(), "MAT-2")
	assert.True(t, apperror.IsNotFound(err))
}

func TestList(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 15, 30, 0, 0, time.UTC) }
	a := stored("MAT-1", TypeRaw, day(1))
	b := stored("MAT-2", TypeProcessed, day(2))
	b.State = StateDelivered
	c := stored("MAT-3", TypeRaw, day(3))
	c.Details.CountryOfHarvest = "Romania"
	svc := NewService(newMemRepo(a, b, c), tx.Passthrough)
	ctx := context.Background()

	res, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TotalCount)
	assert.Equal(t, "MAT-3", res.Items[0].ID, "newest first")

	res, err = svc.List(ctx, ListFilter{State: StateDelivered})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "MAT-2", res.Items[0].ID)

	from, to := domain.DayRange(ptr(day(2)), ptr(day(3)), time.UTC)
	res, err = svc.List(ctx, ListFilter{ListFilter: domain.ListFilter{CreatedFrom: from, CreatedTo: to}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalCount)

	res, err = svc.List(ctx, ListFilter{ListFilter: domain.ListFilter{Expression: `m.details.countryOfHarvest == "Romania"`}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "MAT-3", res.Items[0].ID)

	res, err = svc.List(ctx, ListFilter{ListFilter: domain.ListFilter{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TotalCount)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "MAT-2", res.Items[0].ID)

	_, err = svc.List(ctx, ListFilter{ListFilter: domain.ListFilter{Expression: "m.tip =="}})
	assert.True(t, apperror.IsValidation(err))
}

func TestDelete(t *testing.T) {
	repo := newMemRepo(stored("MAT-1", TypeRaw, time.Now()))
	svc := NewService(repo, tx.Passthrough)

	require.NoError(t, svc.Delete(context.Background(), "MAT-1"))
	assert.Empty(t, repo.items)
	assert.True(t, apperror.IsNotFound(svc.Delete(context.Background(), "MAT-1")))
}

func ptr[T any](v T) *T { return &v }
