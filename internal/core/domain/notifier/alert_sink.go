// Package notifier defines the port through which alerts leave the system.
//
//go:generate mockgen -source=$GOFILE -destination=../../mocks/mock_$GOPACKAGE/mock_$GOFILE -package=mock_$GOPACKAGE
package notifier

import (
	"context"

	"sechelper/internal/core/domain"
)

// AlertSink delivers one alert to its recipient over an out-of-band channel.
type AlertSink interface {
	// Send delivers the alert. Failures wrap domain.ErrDelivery.
	Send(ctx context.Context, alert domain.Alert) error
}
