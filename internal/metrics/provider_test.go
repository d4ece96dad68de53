package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("docbrief")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
}

func TestBusinessMetrics_Record(t *testing.T) {
	provider, err := NewProvider("docbrief")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "docbrief")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "credentials", "credential_create", "success")
	bm.RecordDuration(ctx, "credentials", "credential_create", 25*time.Millisecond, "success")

	// The recorded metric must show up in the Prometheus exposition output.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "docbrief_operations_total")
}

func TestNoopBusinessMetrics(t *testing.T) {
	bm := NoopBusinessMetrics()
	// Must not panic.
	bm.RecordOperation(context.Background(), "jobs", "job_process", "error")
	bm.RecordDuration(context.Background(), "jobs", "job_process", time.Second, "error")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("docbrief")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "docbrief"))
	router.GET("/v1/jobs/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/jobs/123", nil))
	require.Equal(t, http.StatusOK, w.Code)

	mw := httptest.NewRecorder()
	provider.Handler().ServeHTTP(mw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, mw.Body.String(), "docbrief_http_requests_total")
	assert.Contains(t, mw.Body.String(), "/v1/jobs/:id")
}
