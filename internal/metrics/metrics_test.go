package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := New()
	m.BedsAllocated.Inc()
	m.BillsPending.Set(3)
	m.HTTPRequests.WithLabelValues("GET", "/v1/beds", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "facility_beds_allocated_total 1"))
	assert.True(t, strings.Contains(body, "facility_bills_pending 3"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/v1/beds", "200")))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.StaffResizes.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.StaffResizes))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.StaffResizes))
}
