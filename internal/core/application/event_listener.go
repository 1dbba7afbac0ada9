package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/client"
	"sechelper/internal/core/domain/notifier"
	"sechelper/internal/logger"
)

// EventDetector is the name of the event listener.
const EventDetector = "events"

// EventListener streams contract logs matching an event signature and reports each one.
type EventListener struct {
	provider  client.ChainDataProvider
	sink      notifier.AlertSink
	address   domain.Address
	signature string
	recipient string
	logger    logger.AppLogger
	metrics   Metrics
}

// NewEventListener creates an EventListener. An empty recipient only logs the events.
func NewEventListener(
	provider client.ChainDataProvider,
	sink notifier.AlertSink,
	address domain.Address,
	signature, recipient string,
	appLogger logger.AppLogger,
	metrics Metrics,
) (*EventListener, error) {
	if provider == nil {
		return nil, errors.New("NewEventListener: provider is nil")
	}
	if sink == nil {
		return nil, errors.New("NewEventListener: sink is nil")
	}
	if appLogger == nil {
		return nil, errors.New("NewEventListener: appLogger is nil")
	}
	if address.IsZero() || strings.TrimSpace(signature) == "" {
		return nil, fmt.Errorf("%w: address and event signature are required", domain.ErrInvalidMonitorConfig)
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &EventListener{
		provider:  provider,
		sink:      sink,
		address:   address,
		signature: signature,
		recipient: recipient,
		logger:    appLogger.With(logger.KeyDetector, EventDetector, "address", address.String(), "event", signature),
		metrics:   metrics,
	}, nil
}

// Run subscribes from the latest height and handles logs until ctx is cancelled
// or the subscription drops.
func (l *EventListener) Run(ctx context.Context) error {
	head, err := l.provider.LatestHeight(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest height: %w", err)
	}

	filter := domain.LogFilter{
		Address:   l.address,
		Topic:     domain.EventTopic(l.signature),
		FromBlock: head,
	}
	sub, err := l.provider.SubscribeLogs(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to subscribe to logs: %w", err)
	}
	defer sub.Unsubscribe()

	l.logger.Info("Event listener started.", "fromBlock", head.Value(), "topic", filter.Topic.Hex())
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Event listener stopping due to context cancellation.")
			return ctx.Err()
		case err, ok := <-sub.Err():
			if !ok || err == nil {
				return fmt.Errorf("%w: log subscription closed", domain.ErrConnection)
			}
			return err
		case ev, ok := <-sub.Events():
			if !ok {
				return fmt.Errorf("%w: log subscription closed", domain.ErrConnection)
			}
			if err := l.handle(ctx, ev); err != nil {
				return err
			}
		}
	}
}

func (l *EventListener) handle(ctx context.Context, ev domain.LogEvent) error {
	words := decodeWords(ev)
	l.metrics.TickEvaluated(EventDetector, ev.BlockNumber)
	l.logger.Info("Event observed", logger.KeyHeight, ev.BlockNumber.Value(), "hash", ev.TxHash, "words", words)

	if l.recipient == "" {
		return nil
	}

	alert := domain.NewAlert(EventDetector, l.recipient, ev.BlockNumber, fmt.Sprintf(
		"Attention! The %s you monitor emitted %s\nTx hash: %s\nValues: [%s]",
		l.address.String(), l.signature, ev.TxHash, strings.Join(words, ", "),
	))
	alert.TxHashes = []string{ev.TxHash}

	if err := l.sink.Send(ctx, *alert); err != nil {
		if domain.IsFatal(err) {
			return fmt.Errorf("alert sink failed: %w", err)
		}
		l.logger.Error("Failed to deliver alert", "recipient", l.recipient, logger.KeyError, err)
		l.metrics.DeliveryFailed(EventDetector)
		return nil
	}
	l.metrics.AlertSent(EventDetector)
	return nil
}

func decodeWords(ev domain.LogEvent) []string {
	ints := ev.Words()
	words := make([]string, 0, len(ints))
	for _, w := range ints {
		words = append(words, w.String())
	}
	return words
}
