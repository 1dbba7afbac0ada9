package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"sechelper/internal/config"
	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/notifier"
	"sechelper/internal/logger"
)

const (
	embedColor     = 0xe74c3c
	txExplorerURL  = "https://etherscan.io/tx/"
	maxEmbedFields = 25
)

// channelSender posts a message to a channel.
type channelSender func(channelID string, msg *discordgo.MessageSend) error

// DiscordSink posts alerts as embeds. The recipient is a channel ID.
type DiscordSink struct {
	send   channelSender
	close  func() error
	logger logger.AppLogger
}

var _ notifier.AlertSink = (*DiscordSink)(nil)

// NewDiscordSink creates a bot session. Posting goes through the REST API, so the
// gateway websocket is never opened.
func NewDiscordSink(cfg config.DiscordConfig, appLogger logger.AppLogger) (*DiscordSink, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	send := func(channelID string, msg *discordgo.MessageSend) error {
		_, err := session.ChannelMessageSendComplex(channelID, msg)
		return err
	}
	return newDiscordSink(send, session.Close, appLogger), nil
}

func newDiscordSink(send channelSender, closeFn func() error, appLogger logger.AppLogger) *DiscordSink {
	if appLogger == nil {
		appLogger = logger.NewDiscardLogger()
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return &DiscordSink{send: send, close: closeFn, logger: appLogger.With("transport", "discord")}
}

// Send posts the alert to the recipient channel.
func (s *DiscordSink) Send(ctx context.Context, alert domain.Alert) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	if alert.Recipient == "" {
		return fmt.Errorf("%w: discord: alert has no channel", domain.ErrDelivery)
	}
	if err := s.send(alert.Recipient, renderEmbed(alert)); err != nil {
		return fmt.Errorf("%w: discord post to %s: %v", domain.ErrDelivery, alert.Recipient, err)
	}
	s.logger.Debug("Alert posted", "channel", alert.Recipient, logger.KeyDetector, alert.Detector)
	return nil
}

// Close closes the session.
func (s *DiscordSink) Close() error {
	return s.close()
}

func renderEmbed(alert domain.Alert) *discordgo.MessageSend {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Detector", Value: alert.Detector, Inline: true},
		{Name: "Block", Value: alert.Height.String(), Inline: true},
	}
	for _, h := range alert.TxHashes {
		if len(fields) == maxEmbedFields {
			break
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Tx",
			Value: fmt.Sprintf("[%s](%s%s)", shortHash(h), txExplorerURL, h),
		})
	}

	_, details, _ := strings.Cut(alert.Body, "\n")
	return &discordgo.MessageSend{
		Embed: &discordgo.MessageEmbed{
			Title:       alert.Summary(),
			Description: details,
			Type:        discordgo.EmbedTypeRich,
			Color:       embedColor,
			Fields:      fields,
			Footer:      &discordgo.MessageEmbedFooter{Text: alert.Subject},
			Timestamp:   time.Now().Format(time.RFC3339),
		},
	}
}

func shortHash(h string) string {
	if len(h) <= 14 {
		return h
	}
	return h[:10] + "…" + h[len(h)-4:]
}
