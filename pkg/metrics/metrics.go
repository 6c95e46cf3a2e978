// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter: 只增不减的累计值，名字以_total结尾（请求总数、创建总数）
//   - Gauge: 可增可减的瞬时值（正在处理的请求数）
//   - Histogram: 观测值的分布，名字以单位结尾（请求耗时_seconds）
//
// # 使用示例
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//
//	router.Use(middleware.Metrics(m))
//	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
//
//	m.BooksCreated.Inc()
//
// 所有指标注册到调用方传入的Registerer，而不是全局默认Registry，
// 这样测试可以为每个用例创建独立的Registry，不会出现重复注册panic。
//
// 标签只使用有限取值的维度（method、路由模板、status），
// 不要把图书ID之类的高基数值放进标签。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 服务暴露的全部指标
type Metrics struct {
	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method（GET/POST）、path（路由模板，如/api/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BooksCreated 创建成功的图书数
	BooksCreated prometheus.Counter

	// AuthorsCreated 创建成功的作者数
	AuthorsCreated prometheus.Counter

	// UpdateConflicts 因并发修改被拒绝的更新次数
	// 标签：entity（book/author）
	UpdateConflicts *prometheus.CounterVec

	// SeedRuns 启动时种子数据加载次数
	// 标签：result（applied/skipped/failed）
	SeedRuns *prometheus.CounterVec
}

// New 创建并注册全部指标
//
// 同时注册Go运行时和进程指标，/metrics端点无需额外配置即可看到goroutine、内存等信息
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 内存数据库上的CRUD基本在毫秒级
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "path"},
		),

		HTTPRequestsInProgress: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		),

		BooksCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "library_books_created_total",
				Help: "图书创建总数",
			},
		),

		AuthorsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "library_authors_created_total",
				Help: "作者创建总数",
			},
		),

		UpdateConflicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_update_conflicts_total",
				Help: "并发修改导致的更新冲突次数",
			},
			[]string{"entity"},
		),

		SeedRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_seed_runs_total",
				Help: "种子数据加载次数",
			},
			[]string{"result"},
		),
	}
}

// ObserveRequest 记录一次HTTP请求的结果和耗时
func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}
