package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetchOutcomes(t *testing.T) {
	m := New()
	m.ObserveFetch("external-calendar", 10*time.Millisecond, nil)
	m.ObserveFetch("external-calendar", 5*time.Second, fmt.Errorf("list: %w", context.DeadlineExceeded))
	m.ObserveFetch("internal-booking", time.Millisecond, errors.New("connection refused"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.sourceFetches.WithLabelValues("external-calendar", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sourceFetches.WithLabelValues("external-calendar", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sourceFetches.WithLabelValues("internal-booking", "error")))
}

func TestRecordBooking(t *testing.T) {
	m := New()
	m.RecordBooking(OutcomeCreated)
	m.RecordBooking(OutcomeCreated)
	m.RecordBooking(OutcomeConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues(OutcomeConflict)))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/bookings/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/abc", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/bookings/:id", "404")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "detailing_http_requests_total")
}
