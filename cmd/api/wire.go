//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/application/seed"
	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/pkg/metrics"
)

// infrastructureSet 数据库、指标注册表
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRegistry,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	metrics.New,
)

// repositorySet 仓储层
// 图书仓储是否带Redis缓存由provideBookStore根据配置决定
var repositorySet = wire.NewSet(
	gormdb.NewAuthorRepository,
	gormdb.NewTxManager,
	wire.Bind(new(seed.Transactor), new(*gormdb.TxManager)),
	provideBookStore,
	provideBookRepository,
	provideAuthorNotifier,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	author.NewService,
	book.NewService,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	router.New,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序释放Redis和数据库连接
func InitializeApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		handlerSet,
		seed.NewLoader,
		newApp,
	)
	return nil, nil, nil
}
