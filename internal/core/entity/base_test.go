package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Stamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	var r Record
	r.Stamp(now)
	assert.Equal(t, now, r.CreatedAt)
	assert.Equal(t, now, r.UpdatedAt)

	imported := Record{CreatedAt: now.Add(-48 * time.Hour)}
	imported.Stamp(now)
	assert.Equal(t, now.Add(-48*time.Hour), imported.CreatedAt)
	assert.Equal(t, now, imported.UpdatedAt)
}

func TestRecord_Touch(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	stored := Record{ID: "MAT-1", CreatedAt: created, UpdatedAt: created}

	r := Record{ID: "MAT-1", CreatedAt: now.Add(time.Hour)}
	r.Touch(stored, now)

	assert.Equal(t, created, r.CreatedAt)
	assert.Equal(t, now, r.UpdatedAt)
}

func TestJSONB_RoundTrip(t *testing.T) {
	type payload struct {
		Country string `json:"country"`
	}

	v, err := JSONB[payload]{V: payload{Country: "RO"}}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"country":"RO"}`, v)

	var got JSONB[payload]
	require.NoError(t, got.Scan([]byte(`{"country":"SE"}`)))
	assert.Equal(t, "SE", got.V.Country)

	require.NoError(t, got.Scan(nil))
	assert.Empty(t, got.V.Country)

	assert.Error(t, got.Scan(42))
}
