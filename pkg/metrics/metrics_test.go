package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveAssessment(t *testing.T) {
	r := NewRecorder()
	r.ObserveAssessment("safe")
	r.ObserveAssessment("safe")
	r.ObserveAssessment("danger")

	require.Equal(t, 2.0, testutil.ToFloat64(r.assessments.WithLabelValues("safe")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.assessments.WithLabelValues("danger")))
}

func TestObserveRequestAndHandler(t *testing.T) {
	r := NewRecorder()
	r.ObserveRequest(http.MethodPost, "/api/v1/bac/summary", http.StatusOK, 15*time.Millisecond)
	r.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues("POST", "/api/v1/bac/summary", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues("GET", "unmatched", "404")))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "cocktail_bac_http_requests_total")
}
