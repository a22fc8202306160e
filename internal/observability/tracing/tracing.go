package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/m04kA/SMC-AvailabilityService/availability"

// Tracer возвращает tracer движка доступности
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartCacheSpan span обращения к кэшу с проверкой актуальности
func StartCacheSpan(ctx context.Context, kind, key string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "availability.cache."+kind,
		trace.WithAttributes(
			attribute.String("cache.kind", kind),
			attribute.String("cache.key", key),
		),
	)
}

// StartStepSpan span шага расчета рекомендации
func StartStepSpan(ctx context.Context, step string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "availability.step."+step, trace.WithAttributes(attrs...))
}

// StartMatrixSpan span параллельной проверки мастеров
func StartMatrixSpan(ctx context.Context, staffCount, startBlock, requiredBlocks int) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "availability.matrix",
		trace.WithAttributes(
			attribute.Int("matrix.staff_count", staffCount),
			attribute.Int("matrix.start_block", startBlock),
			attribute.Int("matrix.required_blocks", requiredBlocks),
		),
	)
}

// End завершает span, отмечая ошибку, если она есть
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
