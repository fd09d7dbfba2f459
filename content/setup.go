package content

import (
	"log/slog"

	"folio/config"
	"folio/gql"
)

// FromConfig builds a Gateway backed by an HTTP GraphQL client.
func FromConfig(cfg config.ContentConfig, logger *slog.Logger) (*Gateway, error) {
	opts := []gql.Option{gql.WithTimeout(cfg.Timeout)}
	if cfg.Token != "" {
		opts = append(opts, gql.WithToken(cfg.Token))
	}

	client, err := gql.NewClient(cfg.Endpoint, opts...)
	if err != nil {
		return nil, err
	}

	gw, err := NewGateway(Config{
		Executor: client,
		Host:     cfg.Host,
		PageSize: cfg.PageSize,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	gw.logger.Debug("content gateway configured", "endpoint", client.Endpoint(), "host", gw.host, "first", gw.pageSize)
	return gw, nil
}
