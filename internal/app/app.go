// internal/app/app.go

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/app/router"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/config"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.uber.org/zap"
)

// App 封装 Hertz server，带启动/退出钩子
type App struct {
	server *server.Hertz
	config *config.Config
	hooks  struct {
		onInit []func() error
		onExit []func() error
	}
}

func NewApp(cfg *config.Config) *App {
	tracer, tcfg := hertztracing.NewServerTracer()
	h := server.Default(tracer,
		server.WithHostPorts(fmt.Sprintf(":%d", cfg.Server.Port)),
	)
	h.Use(hertztracing.ServerMiddleware(tcfg))
	return &App{server: h, config: cfg}
}

// RegisterInit 注册启动钩子，Run 前按注册顺序执行
func (a *App) RegisterInit(fns ...func() error) {
	a.hooks.onInit = append(a.hooks.onInit, fns...)
}

// RegisterExit 注册退出钩子，GracefulShutdown 时执行
func (a *App) RegisterExit(fns ...func() error) {
	a.hooks.onExit = append(a.hooks.onExit, fns...)
}

func (a *App) Run() error {
	ctx := context.Background()
	logger.Info(ctx, "Starting application...")
	for _, fn := range a.hooks.onInit {
		if err := fn(); err != nil {
			panic(fmt.Sprintf("failed to initialize application: %v", err))
		}
	}
	logger.Info(ctx, "Starting server", zap.Int("port", a.config.Server.Port))
	return a.server.Run()
}

func (a *App) GracefulShutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// 退出钩子失败不阻断关闭流程
	for _, fn := range a.hooks.onExit {
		if err := fn(); err != nil {
			logger.Error(ctx, "Exit hook failed", zap.Error(err))
		}
	}
	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error(context.Background(), "Server forced to shutdown", zap.Error(err))
	}
}

func (a *App) Group(path string) *router.RouterGroup {
	return router.NewRouterGroup(a.server.Group(path))
}
