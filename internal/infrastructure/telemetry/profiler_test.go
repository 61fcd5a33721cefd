package telemetry_test

import (
	"sync"
	"testing"

	"github.com/bizpulse/backend/internal/infrastructure/telemetry"
	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddressAndName(t *testing.T) {
	tests := []struct {
		name string
		cfg  telemetry.ProfilerConfig
		want string
	}{
		{"missing address", telemetry.ProfilerConfig{Enabled: true, ApplicationName: "bizpulse"}, "server address is required"},
		{"missing name", telemetry.ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, "application name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := telemetry.NewProfiler(tt.cfg, nil)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestProfilerConfig_ProfileTypes(t *testing.T) {
	base := telemetry.ProfilerConfig{}.ProfileTypes()
	assert.Contains(t, base, pyroscope.ProfileCPU)
	assert.Contains(t, base, pyroscope.ProfileInuseSpace)
	assert.NotContains(t, base, pyroscope.ProfileMutexCount)

	withMutex := telemetry.ProfilerConfig{MutexProfiling: true}.ProfileTypes()
	assert.Len(t, withMutex, len(base)+2)
	assert.Contains(t, withMutex, pyroscope.ProfileMutexDuration)
}

func TestProfiler_StopConcurrent(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{}, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Stop())
		}()
	}
	wg.Wait()
}
