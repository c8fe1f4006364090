// Package metrics wires OpenTelemetry instruments into the Prometheus
// registry and exposes the few measurements the service records.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "finplan"

// NewMeterProvider returns a meter provider whose readings are exported to reg.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// Instruments groups the service's measurements. A nil *Instruments records
// nothing.
type Instruments struct {
	remoteCallDuration metric.Float64Histogram
	transitions        metric.Int64Counter
	reportExports      metric.Int64Counter
}

// NewInstruments creates the instruments on mp. A nil mp uses a no-op provider.
func NewInstruments(mp metric.MeterProvider) (*Instruments, error) {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	meter := mp.Meter(meterName)

	remote, err := meter.Float64Histogram("planner.remote_call.duration",
		metric.WithDescription("Duration of calls to the planning service."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create remote call histogram: %w", err)
	}

	transitions, err := meter.Int64Counter("intake.transitions",
		metric.WithDescription("Intake state machine transitions."))
	if err != nil {
		return nil, fmt.Errorf("could not create transitions counter: %w", err)
	}

	reports, err := meter.Int64Counter("report.exports",
		metric.WithDescription("Report export attempts."))
	if err != nil {
		return nil, fmt.Errorf("could not create report counter: %w", err)
	}

	return &Instruments{
		remoteCallDuration: remote,
		transitions:        transitions,
		reportExports:      reports,
	}, nil
}

// ObserveRemoteCall records the duration of one call to the planning service.
func (i *Instruments) ObserveRemoteCall(ctx context.Context, endpoint, outcome string, d time.Duration) {
	if i == nil {
		return
	}
	i.remoteCallDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("outcome", outcome),
	))
}

// CountTransition records one intake state transition.
func (i *Instruments) CountTransition(ctx context.Context, from, to string) {
	if i == nil {
		return
	}
	i.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// CountReport records one report export attempt.
func (i *Instruments) CountReport(ctx context.Context, format, outcome string) {
	if i == nil {
		return
	}
	i.reportExports.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("outcome", outcome),
	))
}
