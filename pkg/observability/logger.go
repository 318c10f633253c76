package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Log attribute keys.
const (
	keyService = "service"
	keyVersion = "version"
	keyMode    = "mode"
	keyTraceID = "trace_id"
	keySpanID  = "span_id"
	keySampled = "trace_sampled"
)

// ServiceInfo identifies the running binary in every log record.
type ServiceInfo struct {
	Name    string
	Version string
	Mode    AppMode
}

func (si ServiceInfo) attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	attrs = append(attrs, slog.String(keyService, si.Name))

	if si.Version != "" {
		attrs = append(attrs, slog.String(keyVersion, si.Version))
	}

	if si.Mode != "" {
		attrs = append(attrs, slog.String(keyMode, string(si.Mode)))
	}

	return attrs
}

// TracingHandler is an [slog.Handler] that stamps records with the service
// identity and, inside a span, the trace and span ids. Unsampled spans are
// flagged with trace_sampled=false so their records can be told apart from
// ones that have a trace to look up.
type TracingHandler struct {
	next slog.Handler
}

// NewTracingHandler wraps next. Service attributes are bound before any group
// so they stay at the top level.
func NewTracingHandler(next slog.Handler, info ServiceInfo) *TracingHandler {
	return &TracingHandler{next: next.WithAttrs(info.attrs())}
}

// Enabled reports whether next handles level.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.next.Enabled(ctx, level)
}

// Handle adds span attributes and passes the record on.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(spanAttrs(ctx)...)

	err := th.next.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs returns a handler whose records carry attrs.
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return th
	}

	return &TracingHandler{next: th.next.WithAttrs(attrs)}
}

// WithGroup returns a handler that nests later attributes under name.
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return th
	}

	return &TracingHandler{next: th.next.WithGroup(name)}
}

func spanAttrs(ctx context.Context) []slog.Attr {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}

	attrs := []slog.Attr{
		slog.String(keyTraceID, sc.TraceID().String()),
		slog.String(keySpanID, sc.SpanID().String()),
	}

	if !sc.IsSampled() {
		attrs = append(attrs, slog.Bool(keySampled, false))
	}

	return attrs
}
