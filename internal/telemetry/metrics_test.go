package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	require.NotNil(t, m.TicketsProcessed)
	require.NotNil(t, m.ChangesFetched)
	require.NotNil(t, m.GenerationDuration)
	require.NotNil(t, m.GenerationFailures)
	require.NotNil(t, m.FieldUpdateFailures)

	// Two instances must not collide on registration.
	assert.NotPanics(t, func() { NewMetrics() })
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.TicketsProcessed.WithLabelValues("success").Inc()
	m.TicketsProcessed.WithLabelValues("success").Inc()
	m.TicketsProcessed.WithLabelValues("failed").Inc()
	m.GenerationFailures.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TicketsProcessed.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TicketsProcessed.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationFailures))
}

func TestMetrics_ObserveGeneration(t *testing.T) {
	m := NewMetrics()
	assert.NotPanics(t, func() {
		m.ObserveGeneration(time.Now().Add(-50 * time.Millisecond))
	})
}
