package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/booksapi/pkg/metrics"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/books/:isbn", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	t.Run("生成请求ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/TEST-1", nil))

		assert.Len(t, w.Header().Get(HeaderRequestID), 36)

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "/books/:isbn", fields["route"])
		assert.EqualValues(t, http.StatusNotFound, fields["status"])
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
	})

	t.Run("沿用客户端的请求ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/books/TEST-1", nil)
		req.Header.Set(HeaderRequestID, "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
	})
}

func TestMetrics(t *testing.T) {
	metrics.InitMetrics()

	r := gin.New()
	r.Use(Metrics())
	r.GET("/metrics-mw/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	labels := map[string]string{"method": "GET", "path": "/metrics-mw/:id", "status": "200"}
	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.With(labels))

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-mw/1", nil))
	}

	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.With(labels))
	assert.Equal(t, float64(3), after-before, "path标签使用路由模板")
}

func TestTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp, err := tracing.NewTracerProvider(context.Background(), "test", sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	tracing.Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var traceIDInHandler string
	r := gin.New()
	r.Use(Tracing("test"))
	r.GET("/ok", func(c *gin.Context) {
		traceIDInHandler = tracing.ExtractTraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "HTTP GET /ok", spans[0].Name)
	assert.Equal(t, spans[0].SpanContext.TraceID().String(), traceIDInHandler, "handler中能拿到请求Span")
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
}

func TestLogger_TraceFields(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp, err := tracing.NewTracerProvider(context.Background(), "test", sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	tracing.Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(Tracing("test"), Logger(zap.New(core)))
	r.GET("/authors/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/authors/1", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, spans[0].SpanContext.TraceID().String(), fields["trace_id"])
	assert.Equal(t, spans[0].SpanContext.SpanID().String(), fields["span_id"], "日志关联到请求Span")
}
