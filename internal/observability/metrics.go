package observability

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ellenorzo/ellenorzo-backend/internal/platform/envutil"
	"github.com/ellenorzo/ellenorzo-backend/internal/platform/logger"
)

const meterName = "github.com/ellenorzo/ellenorzo-backend"

// Metrics holds the write-boundary instruments. A nil *Metrics is a valid no-op.
type Metrics struct {
	aggregateOps       metric.Int64Counter
	aggregateLatency   metric.Float64Histogram
	aggregateConflicts metric.Int64Counter
	aggregateRetries   metric.Int64Counter

	registryAssignments metric.Int64Counter
	annualHoursMisses   metric.Int64Counter
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// Init builds the process-wide Metrics on the global meter provider.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		m, err := NewMetrics(otel.GetMeterProvider())
		if err != nil {
			if log != nil {
				log.Warn("metrics init failed (continuing without metrics)", "error", err)
			}
			return
		}
		instance = m
		if log != nil {
			log.Info("metrics initialized", "meter", meterName)
		}
	})
	return instance
}

// NewMetrics registers every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)
	m := &Metrics{}
	var err error

	if m.aggregateOps, err = meter.Int64Counter(
		"ellenorzo.aggregate.operations",
		metric.WithDescription("Aggregate write operations by name and status."),
	); err != nil {
		return nil, err
	}
	if m.aggregateLatency, err = meter.Float64Histogram(
		"ellenorzo.aggregate.duration",
		metric.WithDescription("Aggregate write latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5),
	); err != nil {
		return nil, err
	}
	if m.aggregateConflicts, err = meter.Int64Counter(
		"ellenorzo.aggregate.conflicts",
		metric.WithDescription("Aggregate writes rejected by a uniqueness or concurrency conflict."),
	); err != nil {
		return nil, err
	}
	if m.aggregateRetries, err = meter.Int64Counter(
		"ellenorzo.aggregate.retryable",
		metric.WithDescription("Aggregate writes failing with a retryable error."),
	); err != nil {
		return nil, err
	}
	if m.registryAssignments, err = meter.Int64Counter(
		"ellenorzo.registry.assignments",
		metric.WithDescription("Registry numbers assigned, by numbering group."),
	); err != nil {
		return nil, err
	}
	if m.annualHoursMisses, err = meter.Int64Counter(
		"ellenorzo.annual_hours.unmatched",
		metric.WithDescription("Subject saves whose grade level has no annual-hours rule."),
	); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) ObserveAggregateOperation(name, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if name == "" {
		name = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", name),
		attribute.String("status", status),
	)
	ctx := context.Background()
	m.aggregateOps.Add(ctx, 1, attrs)
	m.aggregateLatency.Record(ctx, dur.Seconds(), attrs)
}

func (m *Metrics) IncAggregateConflict(name string) {
	if m == nil {
		return
	}
	m.aggregateConflicts.Add(context.Background(), 1, metric.WithAttributes(attribute.String("operation", name)))
}

func (m *Metrics) IncAggregateRetry(name string) {
	if m == nil {
		return
	}
	m.aggregateRetries.Add(context.Background(), 1, metric.WithAttributes(attribute.String("operation", name)))
}

func (m *Metrics) IncRegistryAssignment(group string) {
	if m == nil {
		return
	}
	group = strings.TrimSpace(group)
	if group == "" {
		group = "unknown"
	}
	m.registryAssignments.Add(context.Background(), 1, metric.WithAttributes(attribute.String("group", group)))
}

func (m *Metrics) IncAnnualHoursUnmatched(gradeLevel int) {
	if m == nil {
		return
	}
	m.annualHoursMisses.Add(context.Background(), 1, metric.WithAttributes(attribute.String("grade_level", strconv.Itoa(gradeLevel))))
}
