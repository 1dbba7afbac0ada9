// Package metrics exposes detector activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sechelper/internal/core/application"
	"sechelper/internal/core/domain"
)

// DetectorMetrics implements application.Metrics.
type DetectorMetrics struct {
	TicksEvaluated           *prometheus.CounterVec
	LastHeight               *prometheus.GaugeVec
	AlertsSent               *prometheus.CounterVec
	DeliveryFailures         *prometheus.CounterVec
	TransactionsFetchedTotal *prometheus.CounterVec
	FetchDuration            *prometheus.HistogramVec
	PotentialHackersRecorded prometheus.Counter
	RegistryWrites           prometheus.Counter
}

var _ application.Metrics = (*DetectorMetrics)(nil)

// NewDetectorMetrics creates the collectors and registers them on reg.
func NewDetectorMetrics(reg prometheus.Registerer) *DetectorMetrics {
	m := &DetectorMetrics{
		TicksEvaluated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sechelper_ticks_evaluated_total",
			Help: "Total number of blocks or timer ticks evaluated per detector",
		}, []string{"detector"}),
		LastHeight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sechelper_last_evaluated_height",
			Help: "Block height of the most recent evaluation per detector",
		}, []string{"detector"}),
		AlertsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sechelper_alerts_sent_total",
			Help: "Total number of alerts delivered per detector",
		}, []string{"detector"}),
		DeliveryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sechelper_alert_delivery_failures_total",
			Help: "Total number of alerts that could not be delivered per detector",
		}, []string{"detector"}),
		TransactionsFetchedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sechelper_transactions_fetched_total",
			Help: "Total number of transactions returned by the explorer per detector",
		}, []string{"detector"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sechelper_fetch_duration_seconds",
			Help:    "Duration of explorer range queries in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"detector"}),
		PotentialHackersRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sechelper_potential_hackers_recorded_total",
			Help: "Total number of senders appended to the potential_hacker set",
		}),
		RegistryWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sechelper_registry_writes_total",
			Help: "Total number of registry document writes",
		}),
	}

	reg.MustRegister(
		m.TicksEvaluated,
		m.LastHeight,
		m.AlertsSent,
		m.DeliveryFailures,
		m.TransactionsFetchedTotal,
		m.FetchDuration,
		m.PotentialHackersRecorded,
		m.RegistryWrites,
	)
	return m
}

// TickEvaluated counts an evaluated tick and records its height as the detector's last height.
func (m *DetectorMetrics) TickEvaluated(detector string, height domain.BlockHeight) {
	m.TicksEvaluated.WithLabelValues(detector).Inc()
	m.LastHeight.WithLabelValues(detector).Set(float64(height.Value()))
}

// AlertSent counts a delivered alert.
func (m *DetectorMetrics) AlertSent(detector string) {
	m.AlertsSent.WithLabelValues(detector).Inc()
}

// DeliveryFailed counts an alert whose delivery failed.
func (m *DetectorMetrics) DeliveryFailed(detector string) {
	m.DeliveryFailures.WithLabelValues(detector).Inc()
}

// TransactionsFetched adds count fetched transactions and observes the fetch duration.
func (m *DetectorMetrics) TransactionsFetched(detector string, count int, took time.Duration) {
	m.TransactionsFetchedTotal.WithLabelValues(detector).Add(float64(count))
	m.FetchDuration.WithLabelValues(detector).Observe(took.Seconds())
}

// PotentialHackerRecorded counts an address appended to the potential_hacker set.
func (m *DetectorMetrics) PotentialHackerRecorded() {
	m.PotentialHackersRecorded.Inc()
}

// RegistryWritten counts a registry write. It is installed as the registry save hook.
func (m *DetectorMetrics) RegistryWritten() {
	m.RegistryWrites.Inc()
}
