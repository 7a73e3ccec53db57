package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupInMemoryTracer 安装基于内存导出器的全局Provider
func setupInMemoryTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewTracerProvider(context.Background(), "test-service", sdktrace.WithSyncer(exporter))
	require.NoError(t, err)

	Install(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func TestStartSpan(t *testing.T) {
	exporter := setupInMemoryTracer(t)

	t.Run("创建根Span与子Span", func(t *testing.T) {
		exporter.Reset()

		ctx, root := StartSpan(context.Background(), "test-service", "RootOperation")
		_, child := StartSpan(ctx, "test-service", "ChildOperation")
		child.End()
		root.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		childStub, rootStub := spans[0], spans[1]
		assert.Equal(t, "ChildOperation", childStub.Name)
		assert.Equal(t, "RootOperation", rootStub.Name)
		assert.Equal(t, rootStub.SpanContext.TraceID(), childStub.SpanContext.TraceID(), "子Span应继承TraceID")
		assert.Equal(t, rootStub.SpanContext.SpanID(), childStub.Parent.SpanID(), "子Span的父Span应为根Span")
	})

	t.Run("RecordError设置错误状态", func(t *testing.T) {
		exporter.Reset()

		_, span := StartSpan(context.Background(), "test-service", "Failing")
		RecordError(span, errors.New("boom"))
		RecordError(span, nil)
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "boom", spans[0].Status.Description)
		assert.Len(t, spans[0].Events, 1, "应记录一个exception事件")
	})
}

func TestExtractIDs(t *testing.T) {
	setupInMemoryTracer(t)

	assert.Empty(t, ExtractTraceID(context.Background()), "无Span时TraceID为空")
	assert.Empty(t, ExtractSpanID(context.Background()), "无Span时SpanID为空")

	ctx, span := StartSpan(context.Background(), "test-service", "Op")
	defer span.End()

	assert.Len(t, ExtractTraceID(ctx), 32)
	assert.Len(t, ExtractSpanID(ctx), 16)
	assert.Equal(t, span.SpanContext().TraceID().String(), ExtractTraceID(ctx))
}
