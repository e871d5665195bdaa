// Copyright © 2025 The Lantern authors

// Package instrument provides tracing annotators for diagnostics store
// transitions. Two backends are available, OpenTelemetry and
// OpenCensus, so embedders attach whichever their host application
// already exports through.
package instrument

import (
	"context"

	"go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/lanternhq/lantern/diagnostics"
)

const defaultTracerName = "lantern"

var _ diagnostics.Annotator = &otelAnnotator{}
var _ diagnostics.Annotator = &ocAnnotator{}

type otelAnnotator struct {
	tracerName string
	ctx        context.Context
}

// OtelOption configures the OpenTelemetry annotator.
type OtelOption func(*otelAnnotator)

// WithTracerName overrides the tracer name used for store spans.
func WithTracerName(name string) OtelOption {
	return func(a *otelAnnotator) { a.tracerName = name }
}

// WithParentContext links store spans under the given context's span.
func WithParentContext(ctx context.Context) OtelOption {
	return func(a *otelAnnotator) { a.ctx = ctx }
}

// NewOpenTelemetryAnnotator creates an annotator that records one span
// per store transition through the global tracer provider.
func NewOpenTelemetryAnnotator(opts ...OtelOption) diagnostics.Annotator {
	a := &otelAnnotator{tracerName: defaultTracerName, ctx: context.Background()}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *otelAnnotator) Begin(op string) func() {
	tracer := otel.GetTracerProvider().Tracer(a.tracerName)
	_, span := tracer.Start(a.ctx, "store."+op,
		oteltrace.WithAttributes(attribute.String("lantern.store.op", op)))
	return func() { span.End() }
}

type ocAnnotator struct {
	ctx context.Context
}

// NewOpenCensusAnnotator creates an annotator that records one
// OpenCensus span per store transition.
func NewOpenCensusAnnotator(parent context.Context) diagnostics.Annotator {
	if parent == nil {
		parent = context.Background()
	}
	return &ocAnnotator{ctx: parent}
}

func (a *ocAnnotator) Begin(op string) func() {
	_, span := trace.StartSpan(a.ctx, "lantern.store/"+op)
	span.AddAttributes(trace.StringAttribute("lantern.store.op", op))
	return func() { span.End() }
}
