package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sechelper/internal/adapters/notify"
	"sechelper/internal/config"
	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/notifier"
	"sechelper/internal/logger"
)

func sampleAlert() domain.Alert {
	alert := domain.NewAlert("activity", "ops@example.com", domain.BlockHeightOf(101),
		"Attention! The 0x1111111111111111111111111111111111111111 you monitor has action!\nTx hash: [0xabc]")
	alert.TxHashes = []string{"0x00000000000000000000000000000000000000000000000000000000000000ab"}
	return *alert
}

func TestSMTPSink_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string
	send := func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}
	sink := notify.NewSMTPSinkWithSender(config.SMTPConfig{
		Host: "smtp.example.com", Port: 587, Sender: "robot@example.com", Password: "secret",
	}, send, logger.NewDiscardLogger())

	require.NoError(t, sink.Send(context.Background(), sampleAlert()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "robot@example.com", gotFrom)
	assert.Equal(t, []string{"ops@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: SecHelper Robot\r\n")
	assert.Contains(t, gotMsg, "To: ops@example.com\r\n")
	assert.Contains(t, gotMsg, "you monitor has action!\r\nTx hash")
}

func TestSMTPSink_SendFailure(t *testing.T) {
	send := func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("535 authentication failed")
	}
	sink := notify.NewSMTPSinkWithSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587}, send, nil)

	err := sink.Send(context.Background(), sampleAlert())
	assert.ErrorIs(t, err, domain.ErrDelivery)
	assert.False(t, domain.IsFatal(err))

	alert := sampleAlert()
	alert.Recipient = ""
	assert.ErrorIs(t, sink.Send(context.Background(), alert), domain.ErrDelivery)
}

func TestDiscordSink_Send(t *testing.T) {
	var channel string
	var posted *discordgo.MessageSend
	sink := notify.NewDiscordSinkWithSender(func(channelID string, msg *discordgo.MessageSend) error {
		channel, posted = channelID, msg
		return nil
	}, logger.NewDiscardLogger())

	alert := sampleAlert()
	alert.Recipient = "1122334455"
	require.NoError(t, sink.Send(context.Background(), alert))

	assert.Equal(t, "1122334455", channel)
	require.NotNil(t, posted.Embed)
	assert.Equal(t, alert.Summary(), posted.Embed.Title)
	assert.Equal(t, "Tx hash: [0xabc]", posted.Embed.Description)
	assert.Equal(t, domain.AlertSubject, posted.Embed.Footer.Text)
	require.Len(t, posted.Embed.Fields, 3)
	assert.Contains(t, posted.Embed.Fields[2].Value, "https://etherscan.io/tx/"+alert.TxHashes[0])
	assert.NoError(t, sink.Close())
}

func TestDiscordSink_SendFailure(t *testing.T) {
	sink := notify.NewDiscordSinkWithSender(func(string, *discordgo.MessageSend) error {
		return errors.New("HTTP 403 Forbidden")
	}, nil)

	err := sink.Send(context.Background(), sampleAlert())
	assert.ErrorIs(t, err, domain.ErrDelivery)
}

func TestKafkaSink_Send(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var env struct {
			Type string          `json:"type"`
			TS   int64           `json:"ts"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(val, &env); err != nil {
			return err
		}
		if env.Type != "alert" || env.TS == 0 {
			return errors.New("unexpected envelope")
		}
		if !strings.Contains(string(env.Data), `"height":101`) {
			return errors.New("alert height missing")
		}
		return nil
	})

	sink := notify.NewKafkaSinkWithProducer("sechelper.alerts", producer, logger.NewDiscardLogger())
	require.NoError(t, sink.Send(context.Background(), sampleAlert()))
	require.NoError(t, sink.Close())
}

func TestKafkaSink_SendFailure(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	sink := notify.NewKafkaSinkWithProducer("sechelper.alerts", producer, nil)
	err := sink.Send(context.Background(), sampleAlert())
	assert.ErrorIs(t, err, domain.ErrDelivery)
	require.NoError(t, sink.Close())
}

type stubSink struct {
	err   error
	calls int
}

func (s *stubSink) Send(context.Context, domain.Alert) error {
	s.calls++
	return s.err
}

func TestMulti_FanOut(t *testing.T) {
	ok := &stubSink{}
	broken := &stubSink{err: errors.New("connection reset")}
	multi := notify.NewMulti(ok, broken, notify.NewLogSink(logger.NewDiscardLogger()))

	err := multi.Send(context.Background(), sampleAlert())
	assert.ErrorIs(t, err, domain.ErrDelivery)
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, broken.calls)

	require.NoError(t, notify.NewMulti(ok).Send(context.Background(), sampleAlert()))
	assert.NoError(t, multi.Close())
}

func TestNewFromConfig(t *testing.T) {
	multi, err := notify.NewFromConfig(config.AlertConfig{
		Transports: []config.Transport{config.TransportLog, config.TransportSMTP},
		SMTP:       config.SMTPConfig{Host: "smtp.example.com", Port: 587, Sender: "robot@example.com"},
	}, logger.NewDiscardLogger())
	require.NoError(t, err)

	var _ notifier.AlertSink = multi
	assert.NoError(t, multi.Close())

	_, err = notify.NewFromConfig(config.AlertConfig{Transports: []config.Transport{"pigeon"}}, logger.NewDiscardLogger())
	assert.Error(t, err)
}

func TestNewFromConfig_AcceptsValidatedTransportNames(t *testing.T) {
	cfg := config.Default()
	cfg.Alert.Transports = []config.Transport{"LOG", " Log "}
	require.NoError(t, cfg.Validate())

	multi, err := notify.NewFromConfig(cfg.Alert, logger.NewDiscardLogger())
	require.NoError(t, err)
	require.NoError(t, multi.Send(context.Background(), sampleAlert()))
	assert.NoError(t, multi.Close())
}

func TestLogSink_UsesSharedKeys(t *testing.T) {
	var buf strings.Builder
	appLogger, err := logger.NewAppLoggerTo(config.LoggerConfig{Level: config.LogLevelInfo, Format: config.LogFormatJSON}, &buf)
	require.NoError(t, err)

	require.NoError(t, notify.NewLogSink(appLogger).Send(context.Background(), sampleAlert()))

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "activity", rec[logger.KeyDetector])
	assert.EqualValues(t, 101, rec[logger.KeyHeight])
}
