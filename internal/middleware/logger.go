package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// LoggerConfig 访问日志中间件配置
type LoggerConfig struct {
	MaxBodySize     int      // 解析和内联记录的最大请求/响应体字节数
	MaxValueSize    int      // 单个参数值的最大记录长度
	TruncatedSuffix string   // 截断标识
	SensitiveFields []string // 脱敏字段（子串匹配，忽略大小写）
}

type LoggerMiddleware struct {
	config LoggerConfig
}

func LogMiddleware() app.HandlerFunc {
	return NewLogger().Logger()
}

func NewLogger(config ...LoggerConfig) *LoggerMiddleware {
	cfg := LoggerConfig{
		MaxBodySize:     1024 * 100,
		MaxValueSize:    1024 * 32,
		TruncatedSuffix: "[TRUNCATED]",
		SensitiveFields: []string{"password", "token", "secret", "credit_card", "ssn"},
	}
	if len(config) > 0 {
		userCfg := config[0]
		if userCfg.MaxBodySize > 0 {
			cfg.MaxBodySize = userCfg.MaxBodySize
		}
		if userCfg.MaxValueSize > 0 {
			cfg.MaxValueSize = userCfg.MaxValueSize
		}
		if userCfg.TruncatedSuffix != "" {
			cfg.TruncatedSuffix = userCfg.TruncatedSuffix
		}
		if len(userCfg.SensitiveFields) > 0 {
			cfg.SensitiveFields = userCfg.SensitiveFields
		}
	}
	return &LoggerMiddleware{config: cfg}
}

// Logger 记录请求开始和完成两条日志，并把请求信息写入当前 span
func (l *LoggerMiddleware) Logger() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		path := string(c.Request.URI().Path())
		method := string(c.Request.Method())

		span := trace.SpanFromContext(ctx)
		spanContext := span.SpanContext()

		params := l.extractRequestParams(c)
		if len(params) > 0 {
			span.SetAttributes(attribute.String("http.request.params", fmt.Sprintf("%v", params)))
		}

		logFields := []zap.Field{
			zap.String("trace_id", spanContext.TraceID().String()),
			zap.String("span_id", spanContext.SpanID().String()),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("client_ip", clientIP(c)),
			zap.String("user_agent", string(c.Request.Header.UserAgent())),
			zap.Int64("request_size_bytes", int64(len(c.Request.Body()))),
		}
		logger.Info(ctx, "Request started", append(logFields, zap.Any("request_body", params))...)

		c.Next(ctx)

		latency := time.Since(start)
		statusCode := c.Response.StatusCode()
		responseBody := l.truncate(string(c.Response.Body()))

		logFields = append(logFields,
			zap.Int("status", statusCode),
			zap.Duration("latency", latency),
			zap.Int64("response_size_bytes", int64(len(c.Response.Body()))),
			zap.String("response_body", responseBody),
		)

		if statusCode >= consts.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(statusCode))
			logger.Warn(ctx, "Request completed with error", logFields...)
		} else {
			span.SetStatus(codes.Ok, "")
			logger.Info(ctx, "Request completed successfully", logFields...)
		}

		span.SetAttributes(attribute.String("http.response.body", responseBody))
		span.AddEvent("request_completed", trace.WithAttributes(
			attribute.Int("http.status_code", statusCode),
			attribute.Int64("http.latency_ms", latency.Milliseconds()),
			attribute.Int64("http.request.size", int64(len(c.Request.Body()))),
			attribute.Int64("http.response.size", int64(len(c.Response.Body()))),
			attribute.String("http.client_ip", clientIP(c)),
			attribute.String("http.user_agent", string(c.Request.Header.UserAgent())),
		))
	}
}

// extractRequestParams 收集查询参数和 JSON 请求体的顶层字段，敏感字段脱敏
func (l *LoggerMiddleware) extractRequestParams(c *app.RequestContext) map[string]string {
	params := make(map[string]string)

	setParam := func(key, value string) {
		if _, ok := params[key]; ok {
			return
		}
		if l.isSensitive(key) {
			params[key] = "****"
			return
		}
		params[key] = l.truncate(value)
	}

	c.QueryArgs().VisitAll(func(key, value []byte) {
		setParam(string(key), string(value))
	})

	contentType := string(c.Request.Header.Get("Content-Type"))
	body := c.Request.Body()
	if !strings.Contains(contentType, "application/json") || len(body) == 0 {
		return params
	}
	if len(body) > l.config.MaxBodySize {
		params["_body_too_large"] = fmt.Sprintf("%d bytes", len(body))
		return params
	}

	var jsonData map[string]any
	if err := json.Unmarshal(body, &jsonData); err != nil {
		hlog.Warnf("Failed to parse JSON body: %v", err)
		params["_json_parse_error"] = err.Error()
		return params
	}
	for k, v := range jsonData {
		switch v := v.(type) {
		case string:
			setParam(k, v)
		default:
			setParam(k, fmt.Sprintf("%v", v))
		}
	}
	return params
}

func (l *LoggerMiddleware) isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, field := range l.config.SensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

func (l *LoggerMiddleware) truncate(value string) string {
	if len(value) <= l.config.MaxValueSize {
		return value
	}
	return value[:l.config.MaxValueSize] + l.config.TruncatedSuffix
}

// clientIP 依次尝试 X-Forwarded-For、X-Real-IP 和连接地址
func clientIP(c *app.RequestContext) string {
	if xff := c.Request.Header.Get("X-Forwarded-For"); xff != "" {
		if ips := strings.Split(xff, ","); len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if xri := c.Request.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	remoteAddr := c.RemoteAddr().String()
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
