package observability

import (
	"context"
	"time"

	"github.com/annel0/blockverse/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// Shutdown завершает экспорт спанов
type Shutdown func(context.Context) error

// InitTelemetry настраивает OTLP экспортер (по умолчанию localhost:4318)
// и устанавливает глобальный TracerProvider.
func InitTelemetry(ctx context.Context, serviceName string) (Shutdown, error) {
	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	return install(ctx, serviceName, sdktrace.WithBatcher(exp))
}

// InitWithExporter устанавливает TracerProvider с синхронным экспортом
// в переданный экспортер (тесты, отладка)
func InitWithExporter(ctx context.Context, serviceName string, exp sdktrace.SpanExporter) (Shutdown, error) {
	return install(ctx, serviceName, sdktrace.WithSyncer(exp))
}

func install(ctx context.Context, serviceName string, opt sdktrace.TracerProviderOption) (Shutdown, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(opt, sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)
	logging.Info("📡 OpenTelemetry инициализирован (service=%s)", serviceName)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

// Tracer возвращает трейсер компонента из глобального провайдера
func Tracer(component string) trace.Tracer {
	return otel.Tracer("github.com/annel0/blockverse/" + component)
}
