package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"sechelper/internal/adapters/metrics"
	"sechelper/internal/core/domain"
)

func TestDetectorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewDetectorMetrics(reg)

	m.TickEvaluated("activity", domain.BlockHeightOf(100))
	m.TickEvaluated("activity", domain.BlockHeightOf(101))
	m.AlertSent("activity")
	m.DeliveryFailed("threshold")
	m.TransactionsFetched("activity", 3, 150*time.Millisecond)
	m.PotentialHackerRecorded()
	m.RegistryWritten()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TicksEvaluated.WithLabelValues("activity")))
	assert.Equal(t, 101.0, testutil.ToFloat64(m.LastHeight.WithLabelValues("activity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AlertsSent.WithLabelValues("activity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeliveryFailures.WithLabelValues("threshold")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.TransactionsFetchedTotal.WithLabelValues("activity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PotentialHackersRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistryWrites))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchDuration))
}
