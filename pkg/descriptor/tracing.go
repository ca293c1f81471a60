package descriptor

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

var tracer = otel.Tracer("owloop.descriptor")

func startSpan(ctx context.Context, op string, subject types.Entity, kind types.AxiomKind) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Capability."+op,
		trace.WithAttributes(
			attribute.String("owloop.subject", subject.String()),
			attribute.String("owloop.kind", string(kind)),
		),
	)
}

func endSpan(span trace.Span, intents int, err error) {
	span.SetAttributes(attribute.Int("owloop.intents", intents))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func logger() *slog.Logger {
	return slog.Default().With("component", "descriptor")
}
