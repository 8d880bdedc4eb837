package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, TickDuration)
	assert.NotNil(t, TicksTotal)
	assert.NotNil(t, OfferActive)
	assert.NotNil(t, LastTickTimestamp)
	assert.NotNil(t, CatalogPagesTotal)
	assert.NotNil(t, CatalogErrorsTotal)
	assert.NotNil(t, CatalogRequestDuration)
	assert.NotNil(t, NotificationsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
	assert.NotNil(t, StateResetsTotal)
	assert.NotNil(t, StateErrorsTotal)
	assert.NotNil(t, SchedulerNextTickTimestamp)
}

func TestTicksTotal_OutcomeLabel(t *testing.T) {
	t.Parallel()

	c := TicksTotal.WithLabelValues("metrics_test")
	before := testutil.ToFloat64(c)
	c.Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(c), 0.0001)
}
