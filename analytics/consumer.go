package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/IBM/sarama"

	"folio/types"
)

// MessageHandler handles one consumed message.
// If err is non-nil or shouldMark is false the message is left unmarked so
// it is redelivered.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (shouldMark bool, err error)
}

// ConsumerConfig holds Kafka consumer configuration.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
	Logger  *slog.Logger
}

// Consumer feeds messages from a consumer group into a MessageHandler.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
	topic   string
	groupID string
	logger  *slog.Logger
}

// NewConsumer joins the consumer group.
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Consumer{
		group:   group,
		handler: cfg.Handler,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		logger:  logger.With("component", "analytics.consumer", "group", cfg.GroupID, "topic", cfg.Topic),
	}, nil
}

// Run consumes until ctx is cancelled. Rebalances re-enter Consume.
func (c *Consumer) Run(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("kafka consumer error", "error", err)
		}
	}()

	handler := &consumerGroupHandler{handler: c.handler, logger: c.logger}
	c.logger.Info("kafka consumer started")

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("kafka consume failed", "error", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	c.logger.Info("closing kafka consumer")
	return c.group.Close()
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler.
type consumerGroupHandler struct {
	handler MessageHandler
	logger  *slog.Logger
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			h.logger.Debug("kafka message received",
				"partition", message.Partition, "offset", message.Offset, "key", string(message.Key))

			shouldMark, err := h.handler.HandleMessage(session.Context(), message.Value)
			if err != nil {
				h.logger.Error("failed to handle message", "offset", message.Offset, "error", err)
			}
			if shouldMark {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// TypedMessageHandler decodes JSON messages into T before processing them.
type TypedMessageHandler[T any] struct {
	// Validate reports whether a decoded message should be processed.
	Validate func(msg *T) bool
	// Process handles a valid message.
	Process func(ctx context.Context, msg *T) error
	// AlwaysMark marks undecodable and invalid messages so they are skipped.
	AlwaysMark bool
	Logger     *slog.Logger
}

// HandleMessage implements MessageHandler.
func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		h.logger().Warn("failed to unmarshal message", "error", err)
		return h.AlwaysMark, nil
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}

func (h *TypedMessageHandler[T]) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// NewAggregator returns a handler that counts every valid page view event
// with sink. Malformed events are marked and skipped; sink failures leave
// the event for redelivery.
func NewAggregator(sink Tracker, logger *slog.Logger) *TypedMessageHandler[types.PageView] {
	return &TypedMessageHandler[types.PageView]{
		Validate: func(v *types.PageView) bool {
			return strings.TrimSpace(v.Path) != ""
		},
		Process: func(ctx context.Context, v *types.PageView) error {
			return sink.Track(ctx, *v)
		},
		AlwaysMark: true,
		Logger:     logger,
	}
}
