package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	myapp "github.com/LinYanZhi/lyz-vue-vben-admin/internal/app"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/config"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/cron"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/dao"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/middleware"
	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/service"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/jwtauth"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/utils"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const shutdownTimeout = 3 * time.Second

func main() {
	cfg := initConfig()
	if err := initLogger(cfg.Logger); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	ctx := context.Background()
	app := myapp.NewApp(cfg)
	app.RegisterInit(func() error {
		if err := bootstrap(app); err != nil {
			return errors.Wrap(err, "Failed to initialize service")
		}
		// OTel 初始化走异步，不拖慢启动
		go func() {
			if err := initOpenTelemetry(ctx, cfg.OpenTelemetry, app); err != nil {
				logger.Errorf(ctx, "Failed to initialize OpenTelemetry: %v", err)
			}
		}()
		return nil
	})

	app.Use(middleware.CorsMiddleware(cfg.CORS.AllowedOrigins...))
	app.Use(middleware.GlobalErrorHandlerMiddleware())
	app.Use(middleware.LogMiddleware())
	app.Use(middleware.TraceContextMiddleware())

	app.SetupRoutes()

	go func() {
		if err := app.Run(); err != nil {
			panic(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	waitForShutdown(app)
}

func initConfig() *config.Config {
	configPath := utils.GetAbsPath("conf/config.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	jwt, err := jwtauth.NewJWT(
		cfg.JWT.Secret,
		cfg.JWT.Algorithm,
		cfg.JWT.AccessTokenExpireMinute,
		cfg.JWT.RefreshTokenExpireDay,
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize JWT: %v", err))
	}
	jwtauth.Init(jwt)
	return cfg
}

func initLogger(cfg config.LoggerConfig) error {
	logger.InitLogger(logger.Config{
		LogFile:    cfg.LogFile,
		Level:      cfg.Level,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		Console:    cfg.Console,
	})
	return nil
}

// bootstrap 初始化数据库、服务层与定时任务
func bootstrap(app *myapp.App) error {
	var result *multierror.Error

	if err := dao.InitRepo(); err != nil {
		result = multierror.Append(result, err)
	} else if err := dao.SeedData(context.Background()); err != nil {
		// 初始数据写入失败不阻断启动
		logger.Errorf(context.Background(), "Failed to seed initial data: %v", err)
	}

	if err := service.Init(); err != nil {
		result = multierror.Append(result, err)
	}

	if taskManager, err := cron.InitCronTask(); err != nil {
		result = multierror.Append(result, err)
	} else {
		app.RegisterExit(func() error {
			taskManager.Stop()
			return nil
		})
	}

	return result.ErrorOrNil()
}

func initOpenTelemetry(ctx context.Context, cfg config.OpenTelemetryConfig, app *myapp.App) error {
	otelProvider, err := myapp.InitOpenTelemetry(cfg)
	if err != nil {
		return err
	}
	app.RegisterExit(func() error {
		if !cfg.Enable {
			return nil
		}
		if err := otelProvider.Shutdown(ctx); err != nil {
			logger.Errorf(ctx, "Failed to shutdown OpenTelemetry provider: %v", err)
			return err
		}
		return nil
	})
	return nil
}

func waitForShutdown(app *myapp.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(context.Background(), "Shutting down server...")
	app.GracefulShutdown(shutdownTimeout)
	logger.Info(context.Background(), "Server exiting")
}
