package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/depot/internal/core/ports"
)

// SpanLogger implements sdktrace.SpanProcessor by writing finished spans to a logger.
type SpanLogger struct {
	logger ports.Logger
}

// NewSpanLogger returns a SpanLogger writing to logger.
func NewSpanLogger(logger ports.Logger) *SpanLogger {
	return &SpanLogger{logger: logger}
}

// OnStart does nothing.
func (b *SpanLogger) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, its duration and attributes.
func (b *SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "trace %s %s", s.Name(), s.EndTime().Sub(s.StartTime()))
	for _, kv := range s.Attributes() {
		fmt.Fprintf(&sb, " %s=%s", kv.Key, kv.Value.Emit())
	}

	if s.Status().Code == codes.Error {
		b.logger.Warn(sb.String() + " failed: " + s.Status().Description)
		return
	}
	b.logger.Info(sb.String())
}

// ForceFlush does nothing.
func (b *SpanLogger) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *SpanLogger) Shutdown(_ context.Context) error {
	return nil
}
