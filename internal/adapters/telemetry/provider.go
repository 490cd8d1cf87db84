package telemetry

import (
	"os"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/depot/internal/core/ports"
)

// TraceEnv enables span logging when set to a non-empty value.
const TraceEnv = "DEPOT_TRACE"

// Enabled reports whether tracing was requested through the environment.
func Enabled() bool {
	return os.Getenv(TraceEnv) != ""
}

// NewProvider creates an SDK tracer provider that logs every finished span,
// and installs it as the global provider.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewSpanLogger(logger)),
	)
	otel.SetTracerProvider(tp)
	return tp
}

// NewTracer returns the tracer selected by the environment.
func NewTracer(logger ports.Logger) *OTelTracer {
	var tp trace.TracerProvider = otel.GetTracerProvider()
	if Enabled() {
		tp = NewProvider(logger)
	}
	return NewOTelTracer(tp)
}
