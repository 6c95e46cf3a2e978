// Package logger 根据LogConfig构建zap.Logger
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// New 创建zap日志器
//   - format=json输出结构化日志，其他值输出带颜色的console格式
//   - output支持stdout、stderr或文件路径
func New(cfg *config.Config) (*zap.Logger, error) {
	logCfg := cfg.Log

	level, err := zapcore.ParseLevel(strings.ToLower(logCfg.Level))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别: %s", logCfg.Level)
	}

	var zc zap.Config
	if logCfg.Format == "json" {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = !logCfg.EnableCaller

	output := logCfg.Output
	if output == "" {
		output = "stdout"
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("创建日志器失败: %w", err)
	}

	return logger.With(zap.String("service", cfg.Tracing.ServiceName)), nil
}
