package analytics

import (
	"context"
	"errors"
	"log/slog"

	"folio/config"
)

// Backends are the page view collaborators selected from configuration.
// Counter is nil when Redis is not configured.
type Backends struct {
	Tracker Tracker
	Counter Counter

	closers []func() error
}

// Setup picks the view backends. Views go to Kafka when brokers are
// configured, otherwise straight into the Redis counter, otherwise to the
// log. A backend that cannot connect is logged and skipped.
func Setup(ctx context.Context, cfg config.Config, logger *slog.Logger) *Backends {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Backends{}

	if cfg.RedisEnabled() {
		counter, err := NewRedisCounter(ctx, RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
		if err != nil {
			logger.Warn("redis unavailable; view counts disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			b.Counter = counter
			b.Tracker = counter
			b.closers = append(b.closers, counter.Close)
		}
	}

	if cfg.KafkaEnabled() {
		publisher, err := NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Warn("kafka unavailable; falling back", "brokers", cfg.Kafka.Brokers, "error", err)
		} else {
			b.Tracker = publisher
			b.closers = append(b.closers, publisher.Close)
		}
	}

	if b.Tracker == nil {
		b.Tracker = LogTracker{Logger: logger}
	}
	return b
}

// Close releases every backend connection.
func (b *Backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
