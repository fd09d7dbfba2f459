package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration shared by the API server and the CLI.
type Config struct {
	Env             string        `mapstructure:"env"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Log             LogConfig     `mapstructure:"log"`
	Content         ContentConfig `mapstructure:"content"`
	Redis           RedisConfig   `mapstructure:"redis"`
	Kafka           KafkaConfig   `mapstructure:"kafka"`
	S3              S3Config      `mapstructure:"s3"`
	Otel            OtelConfig    `mapstructure:"otel"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ContentConfig addresses the publication on the content graph.
type ContentConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Host     string        `mapstructure:"host"`
	Token    string        `mapstructure:"token"`
	PageSize int           `mapstructure:"page_size"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Pages    []string      `mapstructure:"pages"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

type S3Config struct {
	Bucket       string `mapstructure:"bucket"`
	Prefix       string `mapstructure:"prefix"`
	Region       string `mapstructure:"region"`
	Profile      string `mapstructure:"profile"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

type OtelConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads .env (if present), then an optional YAML config file, then
// FOLIO_* environment variables. An empty path looks for ./folio.yaml and
// tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy names used by existing deployments.
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "PORT")
	_ = v.BindEnv("content.host", EnvPrefix+"_CONTENT_HOST", "HASHNODE_HOST")
	_ = v.BindEnv("otel.endpoint", EnvPrefix+"_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvLocal)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "")

	v.SetDefault("content.endpoint", DefaultContentEndpoint)
	v.SetDefault("content.host", "")
	v.SetDefault("content.token", "")
	v.SetDefault("content.page_size", DefaultContentPageSize)
	v.SetDefault("content.timeout", DefaultContentTimeout)
	v.SetDefault("content.pages", DefaultContentPages)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key", DefaultRedisKey)

	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", DefaultKafkaTopic)
	v.SetDefault("kafka.group_id", DefaultKafkaGroupID)

	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", DefaultS3Prefix)
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.profile", "")
	v.SetDefault("s3.use_path_style", false)

	v.SetDefault("otel.endpoint", "")
	v.SetDefault("cors.allowed_origins", DefaultCORSOrigins)
}

// normalize trims list entries and fills level/format from the environment.
func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Content.Host = strings.TrimSpace(c.Content.Host)
	c.Content.Pages = cleanList(c.Content.Pages)
	c.Kafka.Brokers = cleanList(c.Kafka.Brokers)
	c.CORS.AllowedOrigins = cleanList(c.CORS.AllowedOrigins)

	if c.Log.Level == "" {
		c.Log.Level = "info"
		if c.IsLocal() {
			c.Log.Level = "debug"
		}
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
		if c.IsLocal() {
			c.Log.Format = "text"
		}
	}
	if c.S3.Prefix != "" && !strings.HasSuffix(c.S3.Prefix, "/") {
		c.S3.Prefix += "/"
	}
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	if c.Content.Endpoint == "" {
		return errors.New("content.endpoint must be set")
	}
	if c.Content.PageSize <= 0 {
		return fmt.Errorf("content.page_size must be positive, got %d", c.Content.PageSize)
	}
	if c.Content.Timeout <= 0 {
		return fmt.Errorf("content.timeout must be positive, got %s", c.Content.Timeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// IsLocal reports whether the process runs in the local development environment.
func (c Config) IsLocal() bool { return c.Env == EnvLocal }

// KafkaEnabled reports whether page views are published to Kafka.
func (c Config) KafkaEnabled() bool { return len(c.Kafka.Brokers) > 0 && c.Kafka.Topic != "" }

// RedisEnabled reports whether page views are counted in Redis.
func (c Config) RedisEnabled() bool { return c.Redis.Addr != "" }

// S3Enabled reports whether snapshots can be uploaded.
func (c Config) S3Enabled() bool { return c.S3.Bucket != "" }

// cleanList splits comma-joined entries, trims them and drops blanks.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
