package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/library/pkg/response"
	"github.com/xiebiao/library/pkg/tracing"
)

const (
	// RequestIDHeader 请求ID的请求头/响应头
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey 请求ID在gin.Context中的key
	RequestIDKey = "request_id"

	slowRequestThreshold = 3 * time.Second
)

// Logger 请求ID + 访问日志中间件
//   - 沿用客户端传入的X-Request-ID，没有则生成UUID，并回写到响应头
//   - 每个请求一条结构化日志；5xx用Error级别并带上内部错误，4xx用Warn
//   - 不记录请求体
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		appErr := response.GetError(c)
		switch {
		case status >= 500:
			if appErr != nil {
				fields = append(fields, zap.Int("code", appErr.Code), zap.Error(appErr.Unwrap()))
			}
			log.Error("request failed", fields...)
		case status >= 400:
			if appErr != nil {
				fields = append(fields, zap.Int("code", appErr.Code), zap.String("reason", appErr.Message))
			}
			log.Warn("request rejected", fields...)
		case latency > slowRequestThreshold:
			log.Warn("slow request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// GetRequestID 从Context获取请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
