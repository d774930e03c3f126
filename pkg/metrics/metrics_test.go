package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue суммирует значения счётчика по всем меткам
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		var total float64
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "riverrun")

	m.IncBookingCreated("POS")
	m.IncBookingCreated("POS")
	m.IncCapacityConflict()
	m.AddGeneratedSlots(4)
	m.AddGeneratedSlots(0)
	m.RecordHTTPRequest(http.MethodGet, "/api/v1/slots", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, reg, "bookings_created_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "booking_capacity_conflicts_total"))
	assert.Equal(t, 4.0, counterValue(t, reg, "generated_slots_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "http_requests_total"))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated("ONLINE")
		m.IncCapacityConflict()
		m.AddGeneratedSlots(1)
		m.RecordDBQuery("select", time.Millisecond, nil)
	})
}
