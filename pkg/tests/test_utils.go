package tests

import (
	"fmt"
	"sync"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/config"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/jwtauth"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/utils"
)

var once sync.Once

// 集成测试的共享初始化：空导入本包即可加载测试配置、JWT 和日志
func init() {
	once.Do(func() {
		cfg := InitConfig()
		InitLogger(cfg.Logger)
	})
}

// InitConfig 加载 conf/config_test.yaml 并初始化全局 JWT
func InitConfig() *config.Config {
	configPath := utils.GetAbsPath("conf/config_test.yaml")
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

// InitLogger 按测试配置初始化全局日志
func InitLogger(cfg config.LoggerConfig) {
	logger.InitLogger(logger.Config{
		LogFile:    cfg.LogFile,
		Level:      cfg.Level,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		Console:    cfg.Console,
	})
}
