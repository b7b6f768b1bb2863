package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/domain/filter"
)

func TestListQuery_ToFilter(t *testing.T) {
	q := ListQuery{
		Search:      "molid",
		CreatedFrom: "2024-03-01",
		CreatedTo:   "2024-03-02",
		Filter:      `[{"field":"stare","operator":"eq","value":"Livrat"}]`,
		Expr:        `m.tip == "Materie prima"`,
		Limit:       10,
	}

	f, err := q.ToFilter(time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "molid", f.Search)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.CreatedFrom)
	assert.Equal(t, time.Date(2024, 3, 2, 23, 59, 59, 999_000_000, time.UTC), *f.CreatedTo)
	require.Len(t, f.AdvancedFilters, 1)
	assert.Equal(t, filter.Equal, f.AdvancedFilters[0].Operator)
	assert.Equal(t, 10, f.Limit)
}

func TestListQuery_ToFilter_Invalid(t *testing.T) {
	tests := []struct {
		name string
		q    ListQuery
	}{
		{name: "bad date", q: ListQuery{CreatedFrom: "01.03.2024"}},
		{name: "bad filter json", q: ListQuery{Filter: "stare=Livrat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.q.ToFilter(time.UTC)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}
