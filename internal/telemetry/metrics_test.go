package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNew_Noop(t *testing.T) {
	m, err := New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.NotPanics(t, func() {
		m.PromptGenerated(context.Background(), "general", "generic")
		m.HistoryMutated(context.Background(), "add")
	})
}

func TestGlobal(t *testing.T) {
	assert.NotNil(t, Global())
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.PromptGenerated(context.Background(), "general", "generic")
		m.HistoryMutated(context.Background(), "clear")
	})
}
