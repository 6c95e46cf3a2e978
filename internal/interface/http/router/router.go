package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// New 创建Gin引擎并注册全部路由
//
// 中间件顺序：Tracing → Logger → Recovery → Metrics
// Logger在Recovery外层，panic转成的500也会写访问日志
func New(
	log *zap.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	books *handler.BookHandler,
	authors *handler.AuthorHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Tracing(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.Metrics(m),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		b := api.Group("/books")
		{
			b.GET("", books.ListBooks)
			b.GET("/search", books.SearchBooks)
			b.GET("/:id", books.GetBook)
			b.POST("", books.CreateBook)
			b.PUT("/:id", books.UpdateBook)
			b.DELETE("/:id", books.DeleteBook)
		}

		a := api.Group("/authors")
		{
			a.GET("", authors.ListAuthors)
			a.GET("/:id", authors.GetAuthor)
			a.POST("", authors.CreateAuthor)
			a.PUT("/:id", authors.UpdateAuthor)
			a.DELETE("/:id", authors.DeleteAuthor)
		}
	}

	return r
}
