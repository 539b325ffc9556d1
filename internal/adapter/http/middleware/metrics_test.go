package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestGinMetricsMiddleware_LabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	router := gin.New()
	router.Use(GinMetricsMiddleware(m))
	router.GET("/api/tasks/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/api/tasks/a", "/api/tasks/b", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	// two series: the parameterised route and the unmatched bucket
	count, err := testutil.GatherAndCount(m.Registry(), "taskboard_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
