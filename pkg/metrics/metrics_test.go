package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFilter(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordFilter("abricate", 3, 10, 2)
	m.RecordFilter("abricate", 1, 1, 0)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.recordsTotal.WithLabelValues("abricate", "kept")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.recordsTotal.WithLabelValues("abricate", "dropped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.skippedRowsTotal.WithLabelValues("abricate")))
}

func TestRecordFormatError(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordFormatError("")
	m.RecordFormatError("rgi")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.formatErrorsTotal.WithLabelValues("auto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.formatErrorsTotal.WithLabelValues("rgi")))
}

func TestDoubleRegistrationFails(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewMetrics(registry)
	require.NoError(t, err)

	_, err = NewMetrics(registry)
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	m.RecordRequest(http.MethodGet, http.StatusOK, 5*time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, Path, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `scagaire_http_requests_total{method="GET",status="200"} 1`)
}
