package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"folio/types"
)

// KafkaPublisher publishes page views as JSON events keyed by path.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher connects a synchronous producer to brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return newKafkaPublisher(producer, topic, logger), nil
}

func newKafkaPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger.With("component", "analytics.kafka")}
}

// Track publishes view. The path is normalized before it is sent.
func (k *KafkaPublisher) Track(ctx context.Context, view types.PageView) error {
	view.Path = NormalizePath(view.Path)
	if view.Path == "" {
		return fmt.Errorf("page view has no path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal page view: %w", err)
	}

	partition, offset, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(view.Path),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to publish page view: %w", err)
	}

	k.logger.DebugContext(ctx, "page view published", "id", view.ID, "path", view.Path, "partition", partition, "offset", offset)
	return nil
}

// Close flushes and closes the producer.
func (k *KafkaPublisher) Close() error {
	return k.producer.Close()
}
