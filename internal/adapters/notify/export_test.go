package notify

import (
	"net/smtp"

	"github.com/bwmarrin/discordgo"

	"sechelper/internal/config"
	"sechelper/internal/logger"
)

// NewSMTPSinkWithSender exposes the injectable mail function to tests.
func NewSMTPSinkWithSender(
	cfg config.SMTPConfig,
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error,
	appLogger logger.AppLogger,
) *SMTPSink {
	return newSMTPSink(cfg, send, appLogger)
}

// NewDiscordSinkWithSender exposes the injectable poster to tests.
func NewDiscordSinkWithSender(send func(channelID string, msg *discordgo.MessageSend) error, appLogger logger.AppLogger) *DiscordSink {
	return newDiscordSink(send, nil, appLogger)
}
