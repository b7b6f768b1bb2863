package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/v1/materials/:id", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/materials/:id", 200, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/materials/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestObserveResolution(t *testing.T) {
	m := New()

	m.ObserveResolution(4, 3*time.Millisecond)
	m.ObserveResolution(0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolutions))
	assert.Equal(t, 1, testutil.CollectAndCount(m.resolvedComponents))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveResolution(3, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "bom_resolutions_total 1"))
	assert.Contains(t, body, "go_goroutines")
}
