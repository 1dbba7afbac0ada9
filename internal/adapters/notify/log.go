package notify

import (
	"context"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/notifier"
	"sechelper/internal/logger"
)

// LogSink writes alerts to the application log. It never fails.
type LogSink struct {
	logger logger.AppLogger
}

var _ notifier.AlertSink = (*LogSink)(nil)

// NewLogSink creates a LogSink.
func NewLogSink(appLogger logger.AppLogger) *LogSink {
	if appLogger == nil {
		appLogger = logger.NewDiscardLogger()
	}
	return &LogSink{logger: appLogger.With("transport", "log")}
}

// Send logs the alert.
func (s *LogSink) Send(_ context.Context, alert domain.Alert) error {
	s.logger.Warn(alert.Summary(),
		logger.KeyDetector, alert.Detector,
		"recipient", alert.Recipient,
		"subject", alert.Subject,
		logger.KeyHeight, alert.Height.Value(),
		"txHashes", alert.TxHashes,
		"body", alert.Body,
	)
	return nil
}
