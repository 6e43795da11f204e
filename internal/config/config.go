package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/cron"
	"gopkg.in/yaml.v3"
)

// Config 结构体用于存储所有配置
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	JWT           JWTConfig           `yaml:"jwt"`
	CORS          CORSConfig          `yaml:"cors"`
	Logger        LoggerConfig        `yaml:"logger"`
	OpenTelemetry OpenTelemetryConfig `yaml:"opentelemetry"`
	Tasks         []cron.TaskConfig   `yaml:"tasks"`
}

// ServerConfig 存储服务器相关配置
type ServerConfig struct {
	Port  int  `yaml:"port"`
	Debug bool `yaml:"debug"`
}

// DatabaseConfig 存储数据库相关配置
type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 以秒为单位
	ShowSQL         bool   `yaml:"show_sql"`
}

// NewDatabaseConfig 创建一个带有默认值的 DatabaseConfig
func NewDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 3600, // 默认1小时
		ShowSQL:         true,
	}
}

// JWTConfig 存储 JWT 相关配置
type JWTConfig struct {
	Secret                  string `yaml:"secret"`
	Algorithm               string `yaml:"algorithm"`                  // HS256/HS384/HS512
	AccessTokenExpireMinute int    `yaml:"access_token_expire_minute"` // 访问令牌有效期（分钟）
	RefreshTokenExpireDay   int    `yaml:"refresh_token_expire_day"`   // 刷新令牌有效期（天）
}

// NewJWTConfig 创建一个带有默认值的 JWTConfig
func NewJWTConfig() JWTConfig {
	return JWTConfig{
		Algorithm:               "HS256",
		AccessTokenExpireMinute: 30,
		RefreshTokenExpireDay:   7,
	}
}

// CORSConfig 存储跨域相关配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggerConfig 存储日志相关配置
type LoggerConfig struct {
	LogFile    string `yaml:"log_file"`
	Level      string `yaml:"level"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
	Console    bool   `yaml:"console"`
}

var (
	config *Config
	once   sync.Once
)

// Load 加载并解析 YAML 配置文件
func Load(filename string) (*Config, error) {
	var err error
	once.Do(func() {
		config = &Config{
			Database:      NewDatabaseConfig(), // 使用带有默认值的 DatabaseConfig
			JWT:           NewJWTConfig(),
			OpenTelemetry: NewOpenTelemetryConfig(),
		}
		err = loadFile(filename, config)
		applyEnvOverrides(config)
	})
	return config, err
}

// loadFile 读取并解析 YAML 文件
func loadFile(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides 优先使用环境变量的值
func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.CORS.AllowedOrigins = cfg.CORS.AllowedOrigins[:0]
		for _, part := range parts {
			if origin := strings.TrimSpace(part); origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if instanceID := os.Getenv("INSTANCE_ID"); instanceID != "" {
		cfg.OpenTelemetry.Service = instanceID
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		cfg.OpenTelemetry.Endpoint = endpoint
	}
	if protocol := os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL"); protocol != "" {
		cfg.OpenTelemetry.Protocol = protocol
	}
}

// Get 返回已加载的配置
func Get() *Config {
	return config
}

func GetCronTasks() []cron.TaskConfig {
	if config != nil {
		return config.Tasks
	}

	return nil
}

func GetAppPort() int {
	if config != nil {
		return config.Server.Port
	}

	return 0
}
