package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"sechelper/internal/config"
	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/notifier"
	"sechelper/internal/logger"
)

// sendMailFunc matches smtp.SendMail.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSink mails alerts through a relay with PLAIN auth. The recipient is an email address.
type SMTPSink struct {
	addr     string
	sender   string
	auth     smtp.Auth
	sendMail sendMailFunc
	logger   logger.AppLogger
}

var _ notifier.AlertSink = (*SMTPSink)(nil)

// NewSMTPSink creates an SMTPSink from the relay settings.
func NewSMTPSink(cfg config.SMTPConfig, appLogger logger.AppLogger) *SMTPSink {
	return newSMTPSink(cfg, smtp.SendMail, appLogger)
}

func newSMTPSink(cfg config.SMTPConfig, send sendMailFunc, appLogger logger.AppLogger) *SMTPSink {
	if appLogger == nil {
		appLogger = logger.NewDiscardLogger()
	}
	return &SMTPSink{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		sender:   cfg.Sender,
		auth:     smtp.PlainAuth("", cfg.Sender, cfg.Password, cfg.Host),
		sendMail: send,
		logger:   appLogger.With("transport", "smtp"),
	}
}

// Send mails the alert. smtp.SendMail takes no context; a cancelled ctx skips the send.
func (s *SMTPSink) Send(ctx context.Context, alert domain.Alert) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	if alert.Recipient == "" {
		return fmt.Errorf("%w: smtp: alert has no recipient", domain.ErrDelivery)
	}

	msg := composeMessage(s.sender, alert)
	if err := s.sendMail(s.addr, s.auth, s.sender, []string{alert.Recipient}, msg); err != nil {
		return fmt.Errorf("%w: smtp send to %s: %v", domain.ErrDelivery, alert.Recipient, err)
	}
	s.logger.Debug("Alert mailed", "recipient", alert.Recipient, logger.KeyDetector, alert.Detector)
	return nil
}

func composeMessage(from string, alert domain.Alert) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + alert.Recipient + "\r\n")
	b.WriteString("Subject: " + alert.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(alert.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
