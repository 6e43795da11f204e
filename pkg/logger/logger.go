package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Instance 是全局日志实例，InitLogger 之前为开发态默认配置
var Instance *zap.Logger

func init() {
	Instance, _ = zap.NewDevelopment()
}

type contextKey struct{}

// fieldsKey 用于在 context 中携带日志字段（trace_id 等）
var fieldsKey = contextKey{}

// Config 日志配置
type Config struct {
	LogFile    string // 日志文件路径
	Level      string // 日志级别：debug/info/warn/error
	MaxSize    int    // 单文件最大体积（MB）
	MaxBackups int    // 保留的旧文件个数
	MaxAge     int    // 旧文件保留天数
	Compress   bool   // 是否压缩旧文件
	Console    bool   // 是否同时输出到控制台
}

// InitLogger 初始化全局日志系统，使用 lumberjack 做日志轮转
func InitLogger(cfg Config) {
	level := parseLevel(cfg.Level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "time"

	cores := make([]zapcore.Core, 0, 2)
	if cfg.LogFile != "" {
		writer := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(writer),
			level,
		))
	}
	if cfg.Console || cfg.LogFile == "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	Instance = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithContext 返回携带日志字段的新 context，
// 后续通过该 context 打出的日志都会带上这些字段
func WithContext(ctx context.Context, fields ...zap.Field) context.Context {
	if existing, ok := ctx.Value(fieldsKey).([]zap.Field); ok {
		fields = append(append([]zap.Field{}, existing...), fields...)
	}
	return context.WithValue(ctx, fieldsKey, fields)
}

// FromContext 返回带有 context 中字段的日志实例
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Instance
	}
	if fields, ok := ctx.Value(fieldsKey).([]zap.Field); ok {
		return Instance.With(fields...)
	}
	return Instance
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Error(msg, fields...)
}

func Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Fatal(msg, fields...)
}

func Debugf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Fatalf(format, args...)
}

// Sync 刷新缓冲的日志
func Sync() error {
	return Instance.Sync()
}
