package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/application/seed"
	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
)

// App 启动所需的全部组件
type App struct {
	Engine *gin.Engine
	Seed   *seed.Loader
	DB     *gorm.DB
}

func newApp(engine *gin.Engine, loader *seed.Loader, db *gorm.DB) *App {
	return &App{Engine: engine, Seed: loader, DB: db}
}

// Ping 探测数据库连接，供gRPC健康检查使用
func (a *App) Ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func provideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := gormdb.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := gormdb.Close(db); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// bookStore 图书仓储及作者变更的接收方
// 开启redis时两者都是缓存装饰器，否则直接使用gorm仓储
type bookStore struct {
	repo     book.Repository
	notifier author.ChangeNotifier
}

func provideBookStore(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) (*bookStore, func(), error) {
	repo := gormdb.NewBookRepository(db)
	if !cfg.Redis.Enabled {
		return &bookStore{repo: repo, notifier: author.NopNotifier{}}, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cached := redis.NewCachedBookRepository(repo, redis.NewBookCache(client, cfg.Redis.BookTTL), log)
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Warn("关闭Redis连接失败", zap.Error(err))
		}
	}
	return &bookStore{repo: cached, notifier: cached}, cleanup, nil
}

func provideBookRepository(s *bookStore) book.Repository {
	return s.repo
}

func provideAuthorNotifier(s *bookStore) author.ChangeNotifier {
	return s.notifier
}
