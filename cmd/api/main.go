package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/health"
	"github.com/xiebiao/library/internal/infrastructure/logger"
	"github.com/xiebiao/library/pkg/tracing"
)

// main 图书馆API服务入口
//
// 启动流程：
//  1. 加载配置、初始化日志和链路追踪
//  2. Wire组装依赖（InitializeApp）
//  3. 写入种子数据
//  4. 启动HTTP服务和可选的gRPC健康检查
//  5. 收到SIGINT/SIGTERM后优雅关闭
func main() {
	configPath := flag.String("config", "", "配置文件路径，为空时在./config和.下查找config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("服务异常退出", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
		log.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	app, cleanup, err := InitializeApp(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	if cfg.Seed.Enabled {
		if err := app.Seed.Run(ctx); err != nil {
			return fmt.Errorf("写入种子数据失败: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var healthSrv *health.Server
	if cfg.GRPC.HealthPort > 0 {
		healthSrv, err = health.NewServer(cfg.GRPC.HealthPort, app.Ping, log)
		if err != nil {
			return err
		}
		healthSrv.Start()
		log.Info("gRPC健康检查启动", zap.String("addr", healthSrv.Addr()))
	}

	select {
	case <-ctx.Done():
		log.Info("收到关闭信号，开始优雅关闭")
	case err := <-errCh:
		return fmt.Errorf("HTTP服务启动失败: %w", err)
	}

	if healthSrv != nil {
		healthSrv.Shutdown()
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("HTTP服务关闭失败: %w", err)
	}

	log.Info("服务已安全关闭")
	return nil
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return cfg.Server.ShutdownTimeout
}
