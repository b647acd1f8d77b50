package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is populated from environment variables. Nested struct names form the
// variable prefix, e.g. ClickHouse.MaxOpenConns is read from CLICKHOUSE_MAX_OPEN_CONNS.
type Config struct {
	Service    Service
	SQS        SQS
	ClickHouse ClickHouse
	Consumer   Consumer
	Explorer   Explorer
}

type Service struct {
	Environment string `default:"development"`
	APIPort     string `split_words:"true" default:"8080"`
	Host        string `default:"localhost:8080"`
	LogLevel    string `split_words:"true" default:"info"`
}

type SQS struct {
	Endpoint string
	QueueURL string `split_words:"true"`
	Region   string `default:"eu-central-1"`
}

type ClickHouse struct {
	Host               string `default:"localhost"`
	Port               string `default:"9000"`
	DB                 string `default:"default"`
	User               string `default:"default"`
	Password           string
	MaxOpenConns       int  `split_words:"true" default:"5"`
	MaxIdleConns       int  `split_words:"true" default:"2"`
	ConnMaxLifetimeSec int  `split_words:"true" default:"3600"`
	UseTLS             bool `split_words:"true" default:"false"`
}

type Consumer struct {
	BatchSizeMax    int    `split_words:"true" default:"2000"`
	BatchTimeoutSec int    `split_words:"true" default:"10"`
	ErrorBackoffMs  int    `split_words:"true" default:"1000"`
	HealthCheckPort string `split_words:"true" default:"8081"`
}

// Explorer configures where explore requests read their batch from
type Explorer struct {
	Source       string `default:"clickhouse"`
	SampleSize   int    `split_words:"true" default:"20"`
	SampleSeed   int64  `split_words:"true" default:"1"`
	DefaultLimit int    `split_words:"true" default:"10000"`
	MaxLimit     int    `split_words:"true" default:"100000"`
}

const (
	SourceClickHouse = "clickhouse"
	SourceSample     = "sample"
)

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Explorer.Source {
	case SourceClickHouse, SourceSample:
	default:
		return fmt.Errorf("invalid EXPLORER_SOURCE %q (supported: %s, %s)", c.Explorer.Source, SourceClickHouse, SourceSample)
	}
	if c.Explorer.DefaultLimit <= 0 || c.Explorer.MaxLimit < c.Explorer.DefaultLimit {
		return fmt.Errorf("invalid explorer limits: default %d, max %d", c.Explorer.DefaultLimit, c.Explorer.MaxLimit)
	}
	if c.Consumer.BatchSizeMax <= 0 || c.Consumer.BatchTimeoutSec <= 0 {
		return fmt.Errorf("consumer batch size and timeout must be positive")
	}
	return nil
}
