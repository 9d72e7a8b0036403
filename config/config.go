package config

import (
	"fmt"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName                       string `env:"APP_NAME" env-default:"aster"`
	Version                       string `env:"APP_VERSION" env-default:"dev"`
	Port                          int    `env:"PORT" env-default:"3000"`
	LogLevel                      string `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool   `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int    `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"30"`
	HttpServerReadTimeoutSeconds  int    `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int    `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int    `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	ReadHeaderTimeoutSeconds      int    `env:"HTTP_SERVER_READ_HEADER_TIMEOUT_SECONDS" env-default:"10"`
	StartupMaxAttempts            int    `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// Attio REST API base URL
	AttioAPIURL string `env:"ATTIO_API_URL" env-default:"https://api.attio.com"`
	// Attio web app base URL, used for record and collection links
	AttioAppURL string `env:"ATTIO_APP_URL" env-default:"https://app.attio.com"`
	// Workspace slug in record and collection links
	AttioWorkspaceSlug string `env:"ATTIO_WORKSPACE_SLUG" env-default:""`
	// Token used when a request carries no bearer token of its own
	AttioAPIToken string `env:"ATTIO_API_TOKEN" env-default:""`
	// Page size for collection listings
	AttioPageSize int `env:"ATTIO_PAGE_SIZE" env-default:"250"`

	// Outbound HTTP client settings
	HttpClientTimeout         time.Duration `env:"HTTP_CLIENT_TIMEOUT" env-default:"30s"`
	HttpClientMaxIdleConns    int           `env:"HTTP_CLIENT_MAX_IDLE_CONNS" env-default:"100"`
	HttpClientIdleConnTimeout time.Duration `env:"HTTP_CLIENT_IDLE_CONN_TIMEOUT" env-default:"90s"`

	// Kafka brokers (comma-separated). Events are only published when set.
	KafkaBrokers string `env:"KAFKA_BROKERS" env-default:""`
	// Kafka topic for reconciliation events
	KafkaEventsTopic string `env:"KAFKA_EVENTS_TOPIC" env-default:"attio-events"`

	// Tracing settings
	// Enable OTLP tracing export (set to true to send traces to collector)
	OTLPEnabled bool `env:"OTLP_ENABLED" env-default:"false"`
	// OTLP collector endpoint
	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:"localhost:4317"`
	// OTLP protocol (grpc or http)
	OTLPProtocol string `env:"OTLP_PROTOCOL" env-default:"grpc"`
	// Disable TLS for OTLP (for local development)
	OTLPInsecure bool `env:"OTLP_INSECURE" env-default:"true"`
}

// Load reads the optional .env files and binds the environment to a Config.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// a missing .env file is fine, the environment may already be set
	_ = godotenv.Load(envFiles...)

	cfg := &Config{}
	if err := ectoenv.BindEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AttioPageSize < 1 || c.AttioPageSize > 500 {
		return fmt.Errorf("ATTIO_PAGE_SIZE must be between 1 and 500, got %d", c.AttioPageSize)
	}
	if c.OTLPProtocol != "grpc" && c.OTLPProtocol != "http" {
		return fmt.Errorf("OTLP_PROTOCOL must be grpc or http, got '%s'", c.OTLPProtocol)
	}
	return nil
}
