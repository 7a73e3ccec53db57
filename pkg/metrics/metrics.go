// Package metrics 提供基于Prometheus的指标收集
//
// # 指标分类
//
// **HTTP指标**（由middleware.Metrics记录）：
//   - http_requests_total{method,path,status}：请求总数（Counter）
//   - http_request_duration_seconds{method,path}：请求耗时（Histogram）
//   - http_requests_in_progress：正在处理的请求数（Gauge）
//
// **业务指标**（由应用层用例记录）：
//   - authors_written_total{op}：作者写操作次数（create/replace/patch/delete）
//   - books_written_total{op}：图书写操作次数（create/update/patch/delete）
//   - cache_lookups_total{resource,result}：详情缓存查询（hit/miss/error）
//   - cache_breaker_state：缓存熔断器状态（0=CLOSED 1=OPEN 2=HALF_OPEN）
//
// # 命名规范
//
//  1. Counter以`_total`结尾
//  2. Histogram以单位结尾（`_seconds`）
//  3. 标签只使用有限取值（method、status、op），不要用isbn、id作为标签
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.IncCounterVec(metrics.BooksWrittenTotal, map[string]string{"op": "create"})
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initOnce 防止重复注册（promauto重复注册会panic）
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/books/:isbn）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// AuthorsWrittenTotal 作者写操作总数（Counter）
	// 标签：op（create/replace/patch/delete）
	AuthorsWrittenTotal *prometheus.CounterVec

	// BooksWrittenTotal 图书写操作总数（Counter）
	// 标签：op（create/update/patch/delete）
	BooksWrittenTotal *prometheus.CounterVec

	// CacheLookupsTotal 详情缓存查询总数（Counter）
	// 标签：resource（author/book）、result（hit/miss/error）
	CacheLookupsTotal *prometheus.CounterVec

	// CacheBreakerState 缓存熔断器当前状态（Gauge）
	// 取值与circuitbreaker.State一致：0=CLOSED 1=OPEN 2=HALF_OPEN
	CacheBreakerState prometheus.Gauge
)

// InitMetrics 初始化所有Prometheus指标
//
// 可以多次调用，只有第一次生效。使用promauto注册到默认Registry。
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		AuthorsWrittenTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authors_written_total",
				Help: "作者写操作总数",
			},
			[]string{"op"},
		)

		BooksWrittenTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "books_written_total",
				Help: "图书写操作总数",
			},
			[]string{"op"},
		)

		CacheLookupsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "详情缓存查询总数",
			},
			[]string{"resource", "result"},
		)

		CacheBreakerState = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cache_breaker_state",
				Help: "缓存熔断器状态（0=CLOSED 1=OPEN 2=HALF_OPEN）",
			},
		)
	})
}

// IncCounterVec 递增CounterVec（带标签）
// 未调用InitMetrics时counter为nil，直接忽略（单元测试中常见）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	if gauge == nil {
		return
	}
	gauge.Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
