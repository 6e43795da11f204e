package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"xorm.io/xorm/contexts"
)

// XormLogger xorm 钩子：SQL 写入日志并作为事件挂到当前 span
type XormLogger struct {
	showSQL       bool
	slowThreshold time.Duration
}

func NewXormLogger(showSQL bool) *XormLogger {
	return &XormLogger{
		showSQL:       showSQL,
		slowThreshold: 100 * time.Millisecond,
	}
}

func (s *XormLogger) BeforeProcess(c *contexts.ContextHook) (context.Context, error) {
	return c.Ctx, nil
}

func (s *XormLogger) AfterProcess(c *contexts.ContextHook) error {
	if !s.showSQL {
		return nil
	}

	if c.ExecuteTime > s.slowThreshold {
		logger.Warnf(c.Ctx, "Slow SQL: %s, Args: %v, ExecTime: %v", c.SQL, c.Args, c.ExecuteTime)
	} else if c.ExecuteTime > 0 {
		logger.Infof(c.Ctx, "SQL: %s, Args: %v, ExecTime: %v", c.SQL, c.Args, c.ExecuteTime)
	}

	span := trace.SpanFromContext(c.Ctx)
	attributes := []attribute.KeyValue{
		attribute.String("sql", c.SQL),
		attribute.String("duration", c.ExecuteTime.String()),
	}
	if len(c.Args) > 0 {
		attributes = append(attributes, attribute.String("args", fmt.Sprintf("%v", c.Args)))
	}
	span.AddEvent("db_execute_info", trace.WithAttributes(attributes...))
	return nil
}
