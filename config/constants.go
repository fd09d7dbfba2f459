package config

import "time"

// Environment names
const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

// Content graph defaults
const (
	// DefaultContentEndpoint is the public GraphQL endpoint of the CMS.
	DefaultContentEndpoint = "https://gql.hashnode.com"

	// DefaultContentPageSize is how many posts a listing returns.
	DefaultContentPageSize = 10

	// DefaultContentTimeout bounds one content graph request.
	DefaultContentTimeout = 10 * time.Second

	// DefaultContentPages are the static page slugs exported in snapshots.
	DefaultContentPages = "about"
)

// Page view defaults
const (
	DefaultRedisKey     = "pageviews"
	DefaultKafkaTopic   = "page-views"
	DefaultKafkaGroupID = "folio-aggregator"
)

// Snapshot defaults
const (
	DefaultS3Prefix = "snapshots/"
)

// Server defaults
const (
	DefaultPort            = "8080"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultCORSOrigins     = "http://localhost:3000,http://localhost:19006"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "FOLIO"
