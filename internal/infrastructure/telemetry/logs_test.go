package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// memoryLogExporter keeps exported records in memory
type memoryLogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memoryLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range records {
		e.records = append(e.records, records[i].Clone())
	}
	return nil
}

func (e *memoryLogExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryLogExporter) ForceFlush(context.Context) error { return nil }

func (e *memoryLogExporter) bodies() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.records))
	for i := range e.records {
		out[i] = e.records[i].Body().AsString()
	}
	return out
}

func newMemoryLoggerProvider(t *testing.T) (*LoggerProvider, *memoryLogExporter) {
	t.Helper()
	exporter := &memoryLogExporter{}
	lp, err := newLoggerProvider(LogsConfig{Enabled: true, ServiceName: "bizpulse-test"},
		sdklog.NewSimpleProcessor(exporter), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })
	return lp, exporter
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, nil)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.ForceFlush(context.Background()))
	assert.NoError(t, lp.Shutdown(context.Background()))

	assert.False(t, NewZapOTELCore(ZapBridgeConfig{LoggerProvider: lp}).Enabled(zapcore.ErrorLevel))
}

func TestBridgeLogger_DisabledReturnsBase(t *testing.T) {
	base := zap.NewNop()
	assert.Same(t, base, BridgeLogger(base, ZapBridgeConfig{}))
}

func TestBridgeLogger_ExportsAtOrAboveLevel(t *testing.T) {
	lp, exporter := newMemoryLoggerProvider(t)
	core, local := observer.New(zapcore.DebugLevel)

	log := BridgeLogger(zap.New(core), ZapBridgeConfig{
		ServiceName:    "bizpulse-test",
		LoggerProvider: lp,
		Level:          zapcore.WarnLevel,
	})
	log.Info("bill created")
	log.Warn("stock below threshold", zap.String("product_id", "p-1"))
	log.Error("payment failed")

	assert.Equal(t, 3, local.Len(), "the local core still sees every entry")
	assert.Equal(t, []string{"stock below threshold", "payment failed"}, exporter.bodies())

	exporter.mu.Lock()
	defer exporter.mu.Unlock()
	assert.Equal(t, otellog.SeverityWarn, exporter.records[0].Severity())
	var productID string
	exporter.records[0].WalkAttributes(func(kv otellog.KeyValue) bool {
		if kv.Key == "product_id" {
			productID = kv.Value.AsString()
		}
		return true
	})
	assert.Equal(t, "p-1", productID)
}

func TestLevelFilterCore_WithKeepsLevel(t *testing.T) {
	lp, exporter := newMemoryLoggerProvider(t)
	core := NewZapOTELCore(ZapBridgeConfig{ServiceName: "bizpulse-test", LoggerProvider: lp, Level: zapcore.ErrorLevel})

	child := core.With([]zapcore.Field{zap.String("owner_id", "o-1")})
	assert.False(t, child.Enabled(zapcore.WarnLevel))
	assert.True(t, child.Enabled(zapcore.ErrorLevel))

	zap.New(child).Error("invariant violated")
	assert.Equal(t, []string{"invariant violated"}, exporter.bodies())
}
