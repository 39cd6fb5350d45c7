package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "evalportal"

type Provider struct {
	RequestsTotal      metric.Int64Counter
	RequestDuration    metric.Float64Histogram
	RequestsInFlight   metric.Int64UpDownCounter
	ValidationFailures metric.Int64Counter
	Exports            metric.Int64Counter
	registry           *prometheus.Registry
}

func NewProvider() (*Provider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(meterName)

	p := &Provider{registry: registry}

	if p.RequestsTotal, err = meter.Int64Counter(
		"http_requests",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}

	if p.RequestDuration, err = meter.Float64Histogram(
		"http_request_duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	); err != nil {
		return nil, err
	}

	if p.RequestsInFlight, err = meter.Int64UpDownCounter(
		"http_requests_in_flight",
		metric.WithDescription("Number of HTTP requests currently in flight"),
	); err != nil {
		return nil, err
	}

	if p.ValidationFailures, err = meter.Int64Counter(
		"form_validation_failures",
		metric.WithDescription("Form fields rejected by server-side validation"),
	); err != nil {
		return nil, err
	}

	if p.Exports, err = meter.Int64Counter(
		"csv_exports",
		metric.WithDescription("CSV files generated, by kind"),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RecordValidationFailure counts one rejected field. Safe on a nil provider.
func (p *Provider) RecordValidationFailure(ctx context.Context, form, field string) {
	if p == nil {
		return
	}
	p.ValidationFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("form", form),
		attribute.String("field", field),
	))
}

// RecordExport counts one CSV download. Safe on a nil provider.
func (p *Provider) RecordExport(ctx context.Context, kind string) {
	if p == nil {
		return
	}
	p.Exports.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
