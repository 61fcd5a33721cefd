package telemetry_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bizpulse/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRegisterDBPoolMetrics(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	reg, err := telemetry.RegisterDBPoolMetrics(provider.Meter("test"), sqlDB)
	require.NoError(t, err)

	metrics := collect(t, reader)
	for _, name := range []string{
		"bizpulse.db.connections.open",
		"bizpulse.db.connections.in_use",
		"bizpulse.db.connections.idle",
		"bizpulse.db.connections.wait_count",
		"bizpulse.db.connections.wait_duration",
	} {
		assert.Contains(t, metrics, name)
	}
	gauge, ok := metrics["bizpulse.db.connections.in_use"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(0), gauge.DataPoints[0].Value)

	require.NoError(t, reg.Unregister())
}

func TestRegisterDBPoolMetrics_RequiresArguments(t *testing.T) {
	_, err := telemetry.RegisterDBPoolMetrics(nil, nil)
	assert.Error(t, err)
}
