package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"folio/analytics"
	"folio/types"
)

var topLimit int

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Consume page view events from Kafka into the Redis counter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appConfig.KafkaEnabled() {
			return errors.New("kafka.brokers and kafka.topic must be set")
		}
		if !appConfig.RedisEnabled() {
			return errors.New("redis.addr must be set")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		counter, err := newCounter(ctx)
		if err != nil {
			return err
		}
		defer counter.Close()

		consumer, err := analytics.NewConsumer(analytics.ConsumerConfig{
			Brokers: appConfig.Kafka.Brokers,
			Topic:   appConfig.Kafka.Topic,
			GroupID: appConfig.Kafka.GroupID,
			Handler: analytics.NewAggregator(counter, logger),
			Logger:  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create kafka consumer: %w", err)
		}
		defer consumer.Close()

		logger.Info("🚀 Aggregating page views", "topic", appConfig.Kafka.Topic, "key", appConfig.Redis.Key)
		return consumer.Run(ctx)
	},
}

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Show the most viewed paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appConfig.RedisEnabled() {
			return errors.New("redis.addr must be set")
		}
		counter, err := newCounter(cmd.Context())
		if err != nil {
			return err
		}
		defer counter.Close()

		top, err := counter.Top(cmd.Context(), topLimit)
		if err != nil {
			return err
		}
		return renderTop(cmd.OutOrStdout(), top)
	},
}

func init() {
	viewsCmd.Flags().IntVarP(&topLimit, "limit", "n", 10, "number of paths to show")
	rootCmd.AddCommand(aggregateCmd, viewsCmd)
}

func newCounter(ctx context.Context) (*analytics.RedisCounter, error) {
	return analytics.NewRedisCounter(ctx, analytics.RedisConfig{
		Addr:     appConfig.Redis.Addr,
		Password: appConfig.Redis.Password,
		DB:       appConfig.Redis.DB,
		Key:      appConfig.Redis.Key,
	})
}

func renderTop(w io.Writer, top []types.PathCount) error {
	if len(top) == 0 {
		_, err := fmt.Fprintln(w, "No views recorded.")
		return err
	}
	for _, pc := range top {
		if _, err := fmt.Fprintf(w, "%8d  %s\n", pc.Views, pc.Path); err != nil {
			return err
		}
	}
	return nil
}
