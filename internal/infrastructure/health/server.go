// Package health 通过gRPC暴露标准的grpc.health.v1健康检查
//
// 编排系统（k8s grpc probe、grpc_health_probe）可以直接探测，
// 服务名为空串表示整体状态，"library"表示API服务本身。
package health

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName 在健康检查中注册的服务名
const ServiceName = "library"

// Probe 依赖探测，返回错误表示不可用
type Probe func(ctx context.Context) error

// Server gRPC健康检查服务
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	probe      Probe
	interval   time.Duration
	log        *zap.Logger
	stop       chan struct{}
}

// NewServer 在指定端口监听
func NewServer(port int, probe Probe, log *zap.Logger) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("监听gRPC端口失败: %w", err)
	}
	return newServer(lis, probe, 10*time.Second, log), nil
}

func newServer(lis net.Listener, probe Probe, interval time.Duration, log *zap.Logger) *Server {
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	// 注册反射服务（用于grpcurl调试）
	reflection.Register(grpcServer)

	return &Server{
		grpcServer: grpcServer,
		health:     hs,
		listener:   lis,
		probe:      probe,
		interval:   interval,
		log:        log,
		stop:       make(chan struct{}),
	}
}

// Addr 实际监听地址
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start 在后台启动gRPC服务和依赖探测
func (s *Server) Start() {
	s.check()

	go func() {
		s.log.Info("gRPC健康检查启动", zap.String("addr", s.Addr()))
		if err := s.grpcServer.Serve(s.listener); err != nil {
			s.log.Error("gRPC服务异常退出", zap.Error(err))
		}
	}()

	if s.probe == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.check()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Server) check() {
	status := healthpb.HealthCheckResponse_SERVING
	if s.probe != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := s.probe(ctx)
		cancel()
		if err != nil {
			s.log.Warn("依赖探测失败", zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Shutdown 先把状态切到NOT_SERVING，再等待现有请求完成
func (s *Server) Shutdown() {
	close(s.stop)
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
