package config

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	HTTPAddr      string
	StoreDriver   string
	RedisAddr     string
	PostgresDSN   string
	KafkaBroker   string
	OrdersTopic   string
	AuthURL       string
	CatalogURL    string
	PublicBaseURL string
	HTTPTimeout   time.Duration
	LogLevel      string
}

func Load() Config {
	connStr := "host=" + getEnv("DB_HOST", "localhost") + " port=" + getEnv("DB_PORT", "5432") +
		" user=" + getEnv("DB_USER", "postgres") + " password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + getEnv("DB_NAME", "overcooked") + " sslmode=disable"

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}

	return Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8084"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreDriverRedis)),
		RedisAddr:     getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		PostgresDSN:   connStr,
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		OrdersTopic:   getEnv("ORDERS_TOPIC", "orders"),
		AuthURL:       getEnv("AUTH_URL", "https://ecommerce.routemisr.com/api/v1/auth/signin"),
		CatalogURL:    getEnv("CATALOG_URL", "https://www.themealdb.com/api/json/v1/1"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		HTTPTimeout:   timeout,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func NewLogger(level string) *logrus.Logger {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	return &logrus.Logger{
		Out:       os.Stdout,
		Formatter: &logrus.TextFormatter{DisableLevelTruncation: true},
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl,
	}
}

func MustInitPostgres(dsn string, logger *logrus.Logger) *sql.DB {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal("Failed to connect to database: ", err)
	}

	if err = db.Ping(); err != nil {
		logger.Fatal("Failed to ping database: ", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(addr string, logger *logrus.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis: ", err)
	}

	return client
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
