package app

import (
	"context"
	"fmt"

	"github.com/LinYanZhi/lyz-vue-vben-admin/internal/config"
	"github.com/LinYanZhi/lyz-vue-vben-admin/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

type Shutdownable interface {
	Shutdown(context.Context) error
}

// InitOpenTelemetry 初始化全局追踪。未启用时返回 nil。
func InitOpenTelemetry(cfg config.OpenTelemetryConfig) (Shutdownable, error) {
	if !cfg.Enable {
		return nil, nil
	}

	ctx := context.Background()
	exporter, protocol, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.Service),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(cfg.Sampling)),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tracerProvider)

	logger.Infof(ctx, "OpenTelemetry initialized: service=%s, endpoint=%s, protocol=%s, sampling=%.2f",
		cfg.Service, cfg.Endpoint, protocol, cfg.Sampling)
	return tracerProvider, nil
}

// newTraceExporter Protocol 为 grpc 时走 OTLP gRPC，否则走 http/protobuf
func newTraceExporter(ctx context.Context, cfg config.OpenTelemetryConfig) (trace.SpanExporter, string, error) {
	if cfg.Protocol == "grpc" {
		client := otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
		exporter, err := otlptrace.New(ctx, client)
		return exporter, "grpc", err
	}

	client := otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	exporter, err := otlptrace.New(ctx, client)
	return exporter, "http/protobuf", err
}
