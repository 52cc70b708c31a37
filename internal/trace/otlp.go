package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// DefaultServiceName is reported when OTEL_SERVICE_NAME is not set.
const DefaultServiceName = "icomoon2figma"

// Span attribute keys, all under the icomoon2figma.* namespace.
const (
	AttrFileName  = attribute.Key("icomoon2figma.file.name")
	AttrFileKind  = attribute.Key("icomoon2figma.file.kind")
	AttrIconCount = attribute.Key("icomoon2figma.icon.count")
	AttrFormat    = attribute.Key("icomoon2figma.export.format")
	AttrOutcome   = attribute.Key("icomoon2figma.outcome")
)

// Provider exports spans to an OTLP endpoint.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// NewProvider creates an OTLP/HTTP exporter for endpoint and installs it as
// the global tracer provider.
// Returns nil if endpoint is empty (disabled); spans then go to the
// default no-op provider.
func NewProvider(ctx context.Context, endpoint, serviceName string) (*Provider, error) {
	if endpoint == "" {
		return nil, nil // Disabled
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // local collectors only
	)
	if err != nil {
		return nil, err
	}

	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return &Provider{provider: provider}, nil
}

// Shutdown flushes and closes the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}

// Tracer returns a named tracer from the current global provider. It is
// looked up on every call so a provider installed later is honored.
func Tracer(name string) oteltrace.Tracer {
	return otel.Tracer(name)
}

// Fail records err on span and marks the span as failed.
func Fail(span oteltrace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(AttrOutcome.String("error"))
}
