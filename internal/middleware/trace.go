package middleware

import (
	"context"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/cloudwego/hertz/pkg/app"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TraceContextMiddleware 把 trace_id 等请求字段绑定到日志上下文，
// 后续处理链里的日志自动携带这些字段
func TraceContextMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		spanContext := trace.SpanFromContext(ctx).SpanContext()

		newCtx := logger.WithContext(ctx,
			zap.String("trace_id", spanContext.TraceID().String()),
			zap.String("span_id", spanContext.SpanID().String()),
			zap.String("method", string(c.Method())),
			zap.String("path", string(c.Path())),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", string(c.UserAgent())),
		)
		c.Next(newCtx)
	}
}
