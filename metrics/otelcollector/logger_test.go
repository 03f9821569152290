package otelcollector_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"

	"github.com/AntonStoeckl/roadmap-aggregate-go/metrics/otelcollector"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

type recordingProvider struct {
	embedded.LoggerProvider

	logger *recordingLogger
}

func (p *recordingProvider) Logger(string, ...log.LoggerOption) log.Logger {
	return p.logger
}

type recordingLogger struct {
	embedded.Logger

	mu      sync.Mutex
	records []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func Test_NewLogger_EmitsRecordsWithSeverityAndAttributes(t *testing.T) {
	// arrange
	provider := &recordingProvider{logger: &recordingLogger{}}
	logger := otelcollector.NewLogger("roadmap", provider)

	// act
	logger.WarnContext(context.Background(), shell.LogMsgCommandFailed, shell.LogAttrCommandType, "MoveItem")

	// assert
	records := provider.logger.records
	require.Len(t, records, 1)
	assert.Equal(t, shell.LogMsgCommandFailed, records[0].Body().AsString())
	assert.Equal(t, log.SeverityWarn, records[0].Severity())

	attrs := map[string]string{}
	records[0].WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})
	assert.Equal(t, "MoveItem", attrs[shell.LogAttrCommandType])
}

func Test_NewLogger_SatisfiesShellLoggerPorts(t *testing.T) {
	logger := otelcollector.NewLogger("roadmap", &recordingProvider{logger: &recordingLogger{}})

	var plain shell.Logger = logger

	assert.NotNil(t, shell.ContextualLoggerFrom(plain))
}
