// Package telemetry defines the OpenTelemetry instruments promptdeck records.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentationName identifies promptdeck's meter.
const InstrumentationName = "github.com/thebtf/promptdeck"

// Metrics holds promptdeck counters.
type Metrics struct {
	generated metric.Int64Counter
	mutations metric.Int64Counter
}

// New creates the instruments on meter.
func New(meter metric.Meter) (*Metrics, error) {
	generated, err := meter.Int64Counter("promptdeck.prompts.generated",
		metric.WithDescription("Prompts submitted and turned into suggestions"),
		metric.WithUnit("{prompt}"),
	)
	if err != nil {
		return nil, err
	}
	mutations, err := meter.Int64Counter("promptdeck.history.mutations",
		metric.WithDescription("Persisted history mutations by operation"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, err
	}
	return &Metrics{generated: generated, mutations: mutations}, nil
}

// Global creates the instruments on the global meter provider, which is a
// no-op unless the host process installs one.
func Global() *Metrics {
	m, err := New(otel.Meter(InstrumentationName))
	if err != nil {
		return nil
	}
	return m
}

// PromptGenerated counts one submission. Safe on a nil receiver.
func (m *Metrics) PromptGenerated(ctx context.Context, category, family string) {
	if m == nil {
		return
	}
	m.generated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("family", family),
	))
}

// HistoryMutated counts one persisted mutation. Safe on a nil receiver.
func (m *Metrics) HistoryMutated(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}
