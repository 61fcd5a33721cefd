package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterDBPoolMetrics observes the connection pool of sqlDB on every
// collection cycle. Call Unregister on the result at shutdown.
func RegisterDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB) (metric.Registration, error) {
	if meter == nil || sqlDB == nil {
		return nil, errors.New("RegisterDBPoolMetrics: meter and sqlDB are required")
	}

	open, err := meter.Int64ObservableGauge("bizpulse.db.connections.open",
		metric.WithDescription("Open connections"), metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create open connections gauge: %w", err)
	}
	inUse, err := meter.Int64ObservableGauge("bizpulse.db.connections.in_use",
		metric.WithDescription("Connections in use"), metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-use connections gauge: %w", err)
	}
	idle, err := meter.Int64ObservableGauge("bizpulse.db.connections.idle",
		metric.WithDescription("Idle connections"), metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create idle connections gauge: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("bizpulse.db.connections.wait_count",
		metric.WithDescription("Waits for a free connection"), metric.WithUnit("{wait}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create wait count counter: %w", err)
	}
	waitTime, err := meter.Float64ObservableCounter("bizpulse.db.connections.wait_duration",
		metric.WithDescription("Total time blocked waiting for a connection"), metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create wait duration counter: %w", err)
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(open, int64(stats.OpenConnections))
		o.ObserveInt64(inUse, int64(stats.InUse))
		o.ObserveInt64(idle, int64(stats.Idle))
		o.ObserveInt64(waits, stats.WaitCount)
		o.ObserveFloat64(waitTime, stats.WaitDuration.Seconds())
		return nil
	}, open, inUse, idle, waits, waitTime)
}
