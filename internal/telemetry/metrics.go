// Package telemetry exports aggregation metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "flashkata"
	serviceVersion = "1.0.0"
)

type Config struct {
	// Endpoint of an OTLP gRPC collector. Empty keeps metrics in-process.
	Endpoint string
	Insecure bool
}

// Metrics records tracker aggregation measurements.
type Metrics struct {
	provider       *sdkmetric.MeterProvider
	summaries      metric.Int64Counter
	duration       metric.Float64Histogram
	buckets        metric.Int64Histogram
	orphaned       metric.Int64Counter
	lookupFailures metric.Int64Counter
}

// Setup builds Metrics exporting to cfg.Endpoint. With no endpoint the
// instruments still work but nothing leaves the process.
func Setup(ctx context.Context, cfg Config) (*Metrics, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if cfg.Endpoint != "" {
		expOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			expOpts = append(expOpts,
				otlpmetricgrpc.WithInsecure(),
				otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
			)
		}
		exp, err := otlpmetricgrpc.New(ctx, expOpts...)
		if err != nil {
			return nil, fmt.Errorf("creating OTLP exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(30*time.Second))))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)
	return newMetrics(provider)
}

// NewWithReader builds Metrics on a private provider fed to reader.
func NewWithReader(reader sdkmetric.Reader) (*Metrics, error) {
	return newMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
}

func newMetrics(provider *sdkmetric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(serviceName)
	m := &Metrics{provider: provider}
	var err error

	if m.summaries, err = meter.Int64Counter(
		"flashkata_tracker_summaries_total",
		metric.WithDescription("Tracker summaries computed"),
		metric.WithUnit("{summary}"),
	); err != nil {
		return nil, fmt.Errorf("creating summaries counter: %w", err)
	}
	if m.duration, err = meter.Float64Histogram(
		"flashkata_tracker_summary_duration_seconds",
		metric.WithDescription("Time to compute a tracker summary"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}
	if m.buckets, err = meter.Int64Histogram(
		"flashkata_tracker_chart_buckets",
		metric.WithDescription("Chart buckets per summary"),
		metric.WithUnit("{bucket}"),
	); err != nil {
		return nil, fmt.Errorf("creating buckets histogram: %w", err)
	}
	if m.orphaned, err = meter.Int64Counter(
		"flashkata_tracker_orphaned_cards_total",
		metric.WithDescription("Reviewed cards placed in the Deleted bucket"),
		metric.WithUnit("{card}"),
	); err != nil {
		return nil, fmt.Errorf("creating orphaned counter: %w", err)
	}
	if m.lookupFailures, err = meter.Int64Counter(
		"flashkata_tracker_lookup_failures_total",
		metric.WithDescription("Flashcard or deck lookups that could not be resolved"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, fmt.Errorf("creating lookup failures counter: %w", err)
	}
	return m, nil
}

func (m *Metrics) SummaryComputed(ctx context.Context, elapsed time.Duration, buckets, orphaned int) {
	m.summaries.Add(ctx, 1)
	m.duration.Record(ctx, elapsed.Seconds())
	m.buckets.Record(ctx, int64(buckets))
	if orphaned > 0 {
		m.orphaned.Add(ctx, int64(orphaned))
	}
}

func (m *Metrics) LookupFailed(ctx context.Context, reason string) {
	m.lookupFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// Shutdown flushes pending metrics.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
