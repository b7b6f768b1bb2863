package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumbertrace/internal/core/apperror"
)

func TestMatch(t *testing.T) {
	fields := map[string]any{
		"stare":      "In lucru",
		"nume":       "Bustean Molid",
		"supplierId": "",
	}

	tests := []struct {
		name  string
		items []Item
		want  bool
	}{
		{name: "no items", want: true},
		{name: "eq", items: []Item{{Field: "stare", Operator: Equal, Value: "In lucru"}}, want: true},
		{name: "default operator is eq", items: []Item{{Field: "stare", Value: "Livrat"}}, want: false},
		{name: "neq", items: []Item{{Field: "stare", Operator: NotEqual, Value: "Livrat"}}, want: true},
		{name: "in", items: []Item{{Field: "stare", Operator: InList, Value: []any{"Livrat", "In lucru"}}}, want: true},
		{name: "contains ignores case", items: []Item{{Field: "nume", Operator: Contains, Value: "molid"}}, want: true},
		{name: "ncontains", items: []Item{{Field: "nume", Operator: NotContains, Value: "molid"}}, want: false},
		{name: "null", items: []Item{{Field: "supplierId", Operator: IsNull}}, want: true},
		{name: "not null on missing field", items: []Item{{Field: "ghost", Operator: IsNotNull}}, want: false},
		{
			name: "all must match",
			items: []Item{
				{Field: "stare", Operator: Equal, Value: "In lucru"},
				{Field: "nume", Operator: Contains, Value: "stejar"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.items, fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_UnsupportedOperator(t *testing.T) {
	_, err := Match([]Item{{Field: "stare", Operator: "between"}}, map[string]any{})
	assert.Error(t, err)
}

func TestExpression(t *testing.T) {
	expr, err := Compile(`m.tip == "Materie prima" && m.countryOfHarvest == "Romania"`)
	require.NoError(t, err)

	assert.True(t, expr.Matches(map[string]any{"tip": "Materie prima", "countryOfHarvest": "Romania"}))
	assert.False(t, expr.Matches(map[string]any{"tip": "Materie prima", "countryOfHarvest": "Sweden"}))
	assert.False(t, expr.Matches(map[string]any{"tip": "Materie prima"}), "missing key evaluates to false")

	sized, err := Compile(`size(m.componente) > 1`)
	require.NoError(t, err)
	assert.True(t, sized.Matches(map[string]any{"componente": []any{"MAT-1", "MAT-2"}}))
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(`m.tip ==`)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = Compile(`"just a string"`)
	require.Error(t, err)
}
