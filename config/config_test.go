package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "STORE_DRIVER", "REDIS_HOST", "REDIS_PORT", "KAFKA_BROKER", "HTTP_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":8084", cfg.HTTPAddr)
	assert.Equal(t, StoreDriverRedis, cfg.StoreDriver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBroker)
	assert.Equal(t, "orders", cfg.OrdersTopic)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "carts")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	t.Setenv("HTTP_TIMEOUT", "3s")

	cfg := Load()

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Contains(t, cfg.PostgresDSN, "host=db")
	assert.Contains(t, cfg.PostgresDSN, "dbname=carts")
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, "kafka:9092", cfg.KafkaBroker)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestLoad_BadTimeoutFallsBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	assert.Equal(t, 10*time.Second, Load().HTTPTimeout)
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").Level)
	assert.Equal(t, logrus.InfoLevel, NewLogger("loud").Level)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter("kafka:9092", "orders")
	defer w.Close()

	assert.Equal(t, "orders", w.Topic)
	assert.Equal(t, "kafka:9092", w.Addr.String())
}
