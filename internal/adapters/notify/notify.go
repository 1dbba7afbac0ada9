// Package notify implements the alert sinks: SMTP, Discord, Kafka, structured log and fan-out.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"

	"sechelper/internal/config"
	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/notifier"
	"sechelper/internal/logger"
)

// Multi delivers every alert to all of its sinks.
type Multi struct {
	sinks   []notifier.AlertSink
	closers []io.Closer
}

// Compile-time check to ensure Multi implements notifier.AlertSink
var _ notifier.AlertSink = (*Multi)(nil)

// NewMulti fans out to sinks.
func NewMulti(sinks ...notifier.AlertSink) *Multi {
	m := &Multi{sinks: sinks}
	for _, s := range sinks {
		if c, ok := s.(io.Closer); ok {
			m.closers = append(m.closers, c)
		}
	}
	return m
}

// Send tries every sink and joins the failures.
func (m *Multi) Send(ctx context.Context, alert domain.Alert) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Send(ctx, alert); err != nil {
			if !errors.Is(err, domain.ErrDelivery) {
				err = fmt.Errorf("%w: %w", domain.ErrDelivery, err)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close releases the sinks holding connections.
func (m *Multi) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// NewFromConfig builds the fan-out of the configured transports.
func NewFromConfig(cfg config.AlertConfig, appLogger logger.AppLogger) (*Multi, error) {
	sinks := make([]notifier.AlertSink, 0, len(cfg.Transports))
	fail := func(err error) (*Multi, error) {
		_ = NewMulti(sinks...).Close()
		return nil, err
	}

	for _, transport := range cfg.Transports {
		switch transport.Normalize() {
		case config.TransportSMTP:
			sinks = append(sinks, NewSMTPSink(cfg.SMTP, appLogger))
		case config.TransportDiscord:
			sink, err := NewDiscordSink(cfg.Discord, appLogger)
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, sink)
		case config.TransportKafka:
			sink, err := NewKafkaSink(cfg.Kafka, appLogger)
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, sink)
		case config.TransportLog:
			sinks = append(sinks, NewLogSink(appLogger))
		default:
			return fail(fmt.Errorf("unsupported alert transport: %q", transport))
		}
	}
	return NewMulti(sinks...), nil
}
