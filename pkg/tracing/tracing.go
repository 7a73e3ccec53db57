// Package tracing 提供基于OpenTelemetry的请求追踪
//
// # 核心概念
//
//  1. **Trace**：一个完整的请求链路，例如一次 PUT /books/{isbn}
//  2. **Span**：链路中的一个操作单元，例如HTTP处理、用例执行
//  3. **SpanContext**：TraceID + SpanID，用于把日志和Span关联起来
//
// # 链路示例
//
//	Trace: PUT /books/9781234567897
//	├─ Span: HTTP PUT /books/:isbn（middleware.Tracing）
//	│  └─ Span: SaveBook（application/book）
//	│     └─ GORM SQL（未单独建Span）
//
// # 使用示例
//
//	shutdown, err := tracing.InitTracer("books-api", "localhost:4317")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "books-api", "SaveBook")
//	defer span.End()
//
// 未调用InitTracer时，otel全局Provider是no-op实现，StartSpan依然安全可用。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider（OTLP gRPC导出）
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - endpoint: OTLP gRPC端点，格式为host:port（如localhost:4317）
//
// 返回：
//   - shutdown: 关闭函数（程序退出时调用，确保剩余Span被发送）
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// gRPC连接是懒加载的，Collector未启动时这里不会失败
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	tp, err := NewTracerProvider(ctx, serviceName, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, err
	}

	Install(tp)

	shutdown := func(ctx context.Context) error {
		// 设置5秒超时，防止shutdown阻塞过久
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// NewTracerProvider 创建带服务名资源属性的TracerProvider
// processor决定Span如何导出（生产用Batcher，测试用Syncer+内存导出器）
func NewTracerProvider(ctx context.Context, serviceName string, processor sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(
		ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	return sdktrace.NewTracerProvider(
		// 开发/测试环境100%采样
		// 生产环境建议：sdktrace.WithSampler(sdktrace.TraceIDRatioBased(0.01))
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		processor,
		sdktrace.WithResource(res),
	), nil
}

// Install 设置全局TracerProvider和W3C上下文传播器
func Install(tp trace.TracerProvider) {
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, // W3C Trace Context
			propagation.Baggage{},
		),
	)
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 必须使用返回的ctx调用下游函数，否则无法构建调用树
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName)
}

// RecordError 记录错误并把Span状态置为Error
// err为nil时什么也不做，方便在defer中使用
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
// Context中没有有效Span时返回空字符串
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
