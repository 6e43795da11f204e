package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	mycontext "github.com/LinYanZhi/lyz-vue-vben-admin/pkg/context"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"
)

// GlobalErrorHandlerMiddleware 捕获 panic 并返回统一的错误响应
func GlobalErrorHandlerMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()

				logger.Error(ctx, "Panic occurred",
					zap.Any("error", err),
					zap.String("url", string(c.Request.URI().FullURI())),
					zap.String("method", string(c.Request.Method())),
					zap.String("stack", string(stack)),
				)

				rsp := mycontext.InternalError(fmt.Sprintf("Internal server error: %v", err))
				c.JSON(consts.StatusInternalServerError, rsp)
				c.Abort()
			}
		}()

		c.Next(ctx)
	}
}
