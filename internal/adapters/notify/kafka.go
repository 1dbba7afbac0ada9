package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"sechelper/internal/config"
	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/notifier"
	"sechelper/internal/logger"
)

const alertEnvelopeType = "alert"

// envelope wraps every published record.
type envelope struct {
	Type string          `json:"type"`
	TS   int64           `json:"ts"`
	Data json.RawMessage `json:"data"`
}

type alertRecord struct {
	Detector  string   `json:"detector"`
	Recipient string   `json:"recipient"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Height    uint64   `json:"height"`
	TxHashes  []string `json:"tx_hashes"`
}

// KafkaSink publishes alerts to a topic, keyed by recipient.
type KafkaSink struct {
	topic    string
	producer sarama.SyncProducer
	logger   logger.AppLogger
}

var _ notifier.AlertSink = (*KafkaSink)(nil)

// NewKafkaSink connects a synchronous producer to the configured brokers.
func NewKafkaSink(cfg config.KafkaConfig, appLogger logger.AppLogger) (*KafkaSink, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newProducerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewKafkaSinkWithProducer(cfg.Topic, producer, appLogger), nil
}

// NewKafkaSinkWithProducer wraps an existing producer.
func NewKafkaSinkWithProducer(topic string, producer sarama.SyncProducer, appLogger logger.AppLogger) *KafkaSink {
	if appLogger == nil {
		appLogger = logger.NewDiscardLogger()
	}
	return &KafkaSink{
		topic:    topic,
		producer: producer,
		logger:   appLogger.With("transport", "kafka", "topic", topic),
	}
}

func newProducerConfig(cfg config.KafkaConfig) *sarama.Config {
	sc := sarama.NewConfig()
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 3
	sc.Producer.Retry.Backoff = 200 * time.Millisecond
	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	return sc
}

// Send publishes the alert. SyncProducer takes no context; a cancelled ctx skips the send.
func (s *KafkaSink) Send(ctx context.Context, alert domain.Alert) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}

	value, err := encodeAlert(alert, time.Now())
	if err != nil {
		return fmt.Errorf("%w: kafka encode: %v", domain.ErrDelivery, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(alert.Recipient),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("%w: kafka publish: %v", domain.ErrDelivery, err)
	}
	s.logger.Debug("Alert published", "partition", partition, "offset", offset, logger.KeyDetector, alert.Detector)
	return nil
}

// Close closes the producer.
func (s *KafkaSink) Close() error {
	return s.producer.Close()
}

func encodeAlert(alert domain.Alert, now time.Time) ([]byte, error) {
	data, err := json.Marshal(alertRecord{
		Detector:  alert.Detector,
		Recipient: alert.Recipient,
		Subject:   alert.Subject,
		Body:      alert.Body,
		Height:    alert.Height.Value(),
		TxHashes:  alert.TxHashes,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: alertEnvelopeType, TS: now.UnixMilli(), Data: data})
}
