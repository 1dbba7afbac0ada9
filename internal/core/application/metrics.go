package application

import (
	"time"

	"sechelper/internal/core/domain"
)

// Metrics records detector activity.
type Metrics interface {
	// TickEvaluated is called once per tick handed to a rule.
	TickEvaluated(detector string, height domain.BlockHeight)
	// AlertSent is called after a successful delivery.
	AlertSent(detector string)
	// DeliveryFailed is called when a sink returns ErrDelivery.
	DeliveryFailed(detector string)
	// TransactionsFetched reports the result size and latency of one explorer query.
	TransactionsFetched(detector string, count int, took time.Duration)
	// PotentialHackerRecorded is called after each registry append.
	PotentialHackerRecorded()
}

// NopMetrics discards every observation.
type NopMetrics struct{}

var _ Metrics = NopMetrics{}

// TickEvaluated does nothing.
func (NopMetrics) TickEvaluated(string, domain.BlockHeight) {}

// AlertSent does nothing.
func (NopMetrics) AlertSent(string) {}

// DeliveryFailed does nothing.
func (NopMetrics) DeliveryFailed(string) {}

// TransactionsFetched does nothing.
func (NopMetrics) TransactionsFetched(string, int, time.Duration) {}

// PotentialHackerRecorded does nothing.
func (NopMetrics) PotentialHackerRecorded() {}
