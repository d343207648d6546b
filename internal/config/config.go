package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Scoring     ScoringSettings   `yaml:"scoring" mapstructure:"scoring"`
	Submissions SubmissionsConfig `yaml:"submissions" mapstructure:"submissions"`
	Kafka       KafkaConfig       `yaml:"kafka" mapstructure:"kafka"`
	Retry       RetryConfig       `yaml:"retry" mapstructure:"retry"`
	Batch       BatchConfig       `yaml:"batch" mapstructure:"batch"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Monitoring  MonitoringConfig  `yaml:"monitoring" mapstructure:"monitoring"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ScoringSettings selects the scoring variant. File, when set, points to a
// YAML document layered on top of the variant preset.
type ScoringSettings struct {
	Variant string `yaml:"variant" mapstructure:"variant"`
	File    string `yaml:"file" mapstructure:"file"`
}

// SubmissionsConfig lists where accepted submissions are written.
type SubmissionsConfig struct {
	Sinks     []string `yaml:"sinks" mapstructure:"sinks"`
	CSVPath   string   `yaml:"csv_path" mapstructure:"csv_path"`
	JSONDir   string   `yaml:"json_dir" mapstructure:"json_dir"`
	XLSXPath  string   `yaml:"xlsx_path" mapstructure:"xlsx_path"`
	XLSXSheet string   `yaml:"xlsx_sheet" mapstructure:"xlsx_sheet"`
}

// KafkaConfig configures the submission event publisher.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" mapstructure:"brokers"`
	Topic   string   `yaml:"topic" mapstructure:"topic"`
}

// RetryConfig controls retries around submission sinks.
type RetryConfig struct {
	MaxAttempts      int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMS int `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMS     int `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`

	// A sink that fails BreakerThreshold submissions in a row is skipped
	// for BreakerCooldownS seconds.
	BreakerThreshold int `yaml:"breaker_threshold" mapstructure:"breaker_threshold"`
	BreakerCooldownS int `yaml:"breaker_cooldown_s" mapstructure:"breaker_cooldown_s"`
}

// InitialBackoff returns the configured initial backoff as a duration.
func (r RetryConfig) InitialBackoff() time.Duration {
	return time.Duration(r.InitialBackoffMS) * time.Millisecond
}

// MaxBackoff returns the configured backoff cap as a duration.
func (r RetryConfig) MaxBackoff() time.Duration {
	return time.Duration(r.MaxBackoffMS) * time.Millisecond
}

// BreakerCooldown returns the breaker cooldown as a duration.
func (r RetryConfig) BreakerCooldown() time.Duration {
	return time.Duration(r.BreakerCooldownS) * time.Second
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// MonitoringConfig configures persistence health alerts raised by serve.
type MonitoringConfig struct {
	Enabled              bool    `yaml:"enabled" mapstructure:"enabled"`
	WebhookURL           string  `yaml:"webhook_url" mapstructure:"webhook_url"`
	FailureRateThreshold float64 `yaml:"failure_rate_threshold" mapstructure:"failure_rate_threshold"`
	// MinWrites is the number of sink writes in one interval before the
	// failure rate is judged.
	MinWrites           int `yaml:"min_writes" mapstructure:"min_writes"`
	CheckIntervalSecs   int `yaml:"check_interval_secs" mapstructure:"check_interval_secs"`
	LookbackWindowHours int `yaml:"lookback_window_hours" mapstructure:"lookback_window_hours"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DNACARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "dnacare.db")
	v.SetDefault("scoring.variant", VariantCalibrated)
	v.SetDefault("scoring.file", "")
	v.SetDefault("submissions.sinks", []string{"store"})
	v.SetDefault("submissions.csv_path", "user_data.csv")
	v.SetDefault("submissions.json_dir", "questionnaire_data")
	v.SetDefault("submissions.xlsx_path", "submissions.xlsx")
	v.SetDefault("submissions.xlsx_sheet", "Submissions")
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "dnacare.submissions")
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_ms", 200)
	v.SetDefault("retry.max_backoff_ms", 5000)
	v.SetDefault("retry.breaker_threshold", 5)
	v.SetDefault("retry.breaker_cooldown_s", 30)
	v.SetDefault("batch.concurrency", 8)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("monitoring.enabled", false)
	v.SetDefault("monitoring.webhook_url", "")
	v.SetDefault("monitoring.failure_rate_threshold", 0.2)
	v.SetDefault("monitoring.min_writes", 5)
	v.SetDefault("monitoring.check_interval_secs", 300)
	v.SetDefault("monitoring.lookback_window_hours", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

var knownSinks = map[string]bool{
	"store": true,
	"csv":   true,
	"json":  true,
	"xlsx":  true,
	"kafka": true,
}

// Validate checks the settings a command mode depends on. Modes: "score"
// (scoring only), "persist" (score plus store and sinks) and "serve"
// (persist plus HTTP settings).
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "score", "persist", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Scoring.Variant {
	case VariantCalibrated, VariantLinear:
	default:
		errs = append(errs, fmt.Sprintf("scoring.variant %q must be %s or %s", c.Scoring.Variant, VariantCalibrated, VariantLinear))
	}
	if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 64 {
		errs = append(errs, "batch.concurrency must be between 1 and 64")
	}

	if mode == "persist" || mode == "serve" {
		switch c.Store.Driver {
		case "sqlite", "postgres":
		default:
			errs = append(errs, fmt.Sprintf("store.driver %q must be sqlite or postgres", c.Store.Driver))
		}
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required")
		}
		for _, s := range c.Submissions.Sinks {
			if !knownSinks[s] {
				errs = append(errs, fmt.Sprintf("submissions.sinks: unknown sink %q", s))
				continue
			}
			if s == "kafka" && len(c.Kafka.Brokers) == 0 {
				errs = append(errs, "kafka.brokers is required when the kafka sink is enabled")
			}
		}
		if c.Retry.MaxAttempts < 1 {
			errs = append(errs, "retry.max_attempts must be >= 1")
		}
	}

	if mode == "serve" {
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server.rate_limit must be >= 0")
		}
		if c.Monitoring.Enabled && (c.Monitoring.FailureRateThreshold <= 0 || c.Monitoring.FailureRateThreshold > 1) {
			errs = append(errs, "monitoring.failure_rate_threshold must be in (0, 1]")
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
