// Package application contains the detector orchestration and detection rules.
package application

import (
	"context"
	"errors"
	"fmt"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/notifier"
	"sechelper/internal/logger"
)

// Tick is one evaluation point of a detector.
type Tick struct {
	Height domain.BlockHeight
}

// Trigger produces the evaluation points of a detector.
type Trigger interface {
	// Next blocks until the next tick. A non-nil error ends the run.
	Next(ctx context.Context) (Tick, error)

	// Close releases the trigger's resources.
	Close()
}

// Rule evaluates one tick and optionally produces an alert.
type Rule interface {
	Name() string
	OnTick(ctx context.Context, tick Tick) (*domain.Alert, error)
}

// Monitor drives a Rule with a Trigger and delivers the alerts it produces.
type Monitor struct {
	trigger Trigger
	rule    Rule
	sink    notifier.AlertSink
	logger  logger.AppLogger
	metrics Metrics
}

// NewMonitor creates a Monitor. A nil metrics recorder disables instrumentation.
func NewMonitor(
	trigger Trigger,
	rule Rule,
	sink notifier.AlertSink,
	appLogger logger.AppLogger,
	metrics Metrics,
) (*Monitor, error) {
	if trigger == nil {
		return nil, errors.New("NewMonitor: trigger is nil")
	}
	if rule == nil {
		return nil, errors.New("NewMonitor: rule is nil")
	}
	if sink == nil {
		return nil, errors.New("NewMonitor: sink is nil")
	}
	if appLogger == nil {
		return nil, errors.New("NewMonitor: appLogger is nil")
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Monitor{
		trigger: trigger,
		rule:    rule,
		sink:    sink,
		logger:  appLogger.With(logger.KeyDetector, rule.Name()),
		metrics: metrics,
	}, nil
}

// Run evaluates the rule on every tick until ctx is cancelled or a fatal error occurs.
// Delivery failures are logged and counted; every other error is returned.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.trigger.Close()

	m.logger.Info("Detector started.")
	for {
		tick, err := m.trigger.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				m.logger.Info("Detector stopping due to context cancellation.")
				return ctx.Err()
			}
			return fmt.Errorf("trigger failed: %w", err)
		}

		tickLogger := m.logger.With(logger.KeyHeight, tick.Height.Value())
		tickLogger.Debug("Evaluating tick")
		m.metrics.TickEvaluated(m.rule.Name(), tick.Height)

		alert, err := m.rule.OnTick(ctx, tick)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("rule %s failed at height %s: %w", m.rule.Name(), tick.Height, err)
		}
		if alert == nil {
			continue
		}

		if err := m.sink.Send(ctx, *alert); err != nil {
			if domain.IsFatal(err) {
				return fmt.Errorf("alert sink failed: %w", err)
			}
			tickLogger.Error("Failed to deliver alert", "recipient", alert.Recipient, logger.KeyError, err)
			m.metrics.DeliveryFailed(m.rule.Name())
			continue
		}
		tickLogger.Info("Alert delivered", "recipient", alert.Recipient, "transactions", len(alert.TxHashes))
		m.metrics.AlertSent(m.rule.Name())
	}
}
