package config

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Settings struct {
	HTTPPort      string        `mapstructure:"http_port"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	DB            DBSettings    `mapstructure:",squash"`
	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     string        `mapstructure:"redis_port"`
	KafkaBroker   string        `mapstructure:"kafka_broker"`
	OrderTopic    string        `mapstructure:"order_events_topic"`
	EventTimeout  time.Duration `mapstructure:"event_publish_timeout"`
	QRSecret      string        `mapstructure:"qr_signing_secret"`
	QRTokenTTL    time.Duration `mapstructure:"qr_token_ttl"`
	MenuCacheTTL  time.Duration `mapstructure:"menu_cache_ttl"`
	HistoryLimit  int           `mapstructure:"history_limit"`
	LogLevel      string        `mapstructure:"log_level"`
	LogEncoding   string        `mapstructure:"log_encoding"`
}

type DBSettings struct {
	Host     string `mapstructure:"db_host"`
	Port     string `mapstructure:"db_port"`
	Name     string `mapstructure:"db_name"`
	User     string `mapstructure:"db_user"`
	Password string `mapstructure:"db_password"`
}

func (d DBSettings) ConnString() string {
	return "host=" + d.Host + " port=" + d.Port + " user=" + d.User +
		" password=" + d.Password + " dbname=" + d.Name + " sslmode=disable"
}

var defaults = map[string]interface{}{
	"http_port":             "8081",
	"public_base_url":       "http://localhost:8080",
	"db_host":               "localhost",
	"db_port":               "5432",
	"db_name":               "tableside",
	"db_user":               "postgres",
	"db_password":           "",
	"redis_host":            "localhost",
	"redis_port":            "6379",
	"kafka_broker":          "localhost:9092",
	"order_events_topic":    "order-events",
	"event_publish_timeout": "250ms",
	"qr_signing_secret":     "",
	"qr_token_ttl":          "0s",
	"menu_cache_ttl":        "60s",
	"history_limit":         50,
	"log_level":             "info",
	"log_encoding":          "json",
}

// Load reads settings from the environment (DB_HOST, REDIS_PORT, ...).
func Load() (*Settings, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if settings.HistoryLimit <= 0 {
		return nil, fmt.Errorf("history_limit must be positive, got %d", settings.HistoryLimit)
	}
	return &settings, nil
}

func NewLogger(s *Settings) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if s.LogEncoding == "console" {
		cfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

func MustInitPostgres(s *Settings, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", s.DB.ConnString())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(s *Settings, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: s.RedisHost + ":" + s.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	return client
}

// NewKafkaWriter returns an async writer. WriteMessages only enqueues;
// delivery failures surface through logger.
func NewKafkaWriter(s *Settings, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(s.KafkaBroker),
		Topic:                  s.OrderTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("Failed to deliver order events",
					zap.String("topic", s.OrderTopic),
					zap.Int("messages", len(messages)),
					zap.Error(err))
			}
		},
	}
}
