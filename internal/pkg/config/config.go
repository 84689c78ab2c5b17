package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Outbox     OutboxConfig
	Migrations MigrationsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	Issuer   string `envconfig:"JWT_ISSUER" default:"wedding-booking"`
}

// RedisConfig: an empty address disables the report cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REPORT_CACHE_TTL" default:"5m"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig: without brokers, lifecycle events are only logged.
type KafkaConfig struct {
	Brokers  []string      `envconfig:"KAFKA_BROKERS"`
	Topic    string        `envconfig:"KAFKA_TOPIC" default:"booking-events"`
	ClientID string        `envconfig:"KAFKA_CLIENT_ID" default:"wedding-booking"`
	Timeout  time.Duration `envconfig:"KAFKA_TIMEOUT" default:"10s"`
	RetryMax int           `envconfig:"KAFKA_RETRY_MAX" default:"3"`
}

func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	MaxAttempts  int           `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type MigrationsConfig struct {
	Path        string `envconfig:"MIGRATIONS_PATH" default:"file://migrations"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"false"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// LoadConfig reads a local .env when present; real environment variables win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// LoadSections fills only the given section structs, for tools that run without the full service settings.
func LoadSections(sections ...any) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return fmt.Errorf("failed to process env config: %w", err)
		}
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
			Issuer:   "wedding-booking-test",
		},
		Redis: RedisConfig{
			TTL: time.Minute,
		},
		Kafka: KafkaConfig{
			Topic:    "booking-events",
			ClientID: "wedding-booking-test",
			Timeout:  5 * time.Second,
			RetryMax: 1,
		},
		Outbox: OutboxConfig{
			PollInterval: 100 * time.Millisecond,
			BatchSize:    10,
			MaxAttempts:  3,
		},
		Migrations: MigrationsConfig{
			Path: "file://migrations",
		},
	}
}
