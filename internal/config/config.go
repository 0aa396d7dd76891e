package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/corray333/backend-labs/checkout/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Reservation drivers.
const (
	DriverRabbitMQ = "rabbitmq"
	DriverKafka    = "kafka"
)

const (
	defaultTimeoutSeconds  = 5
	defaultCacheTTLSeconds = 60
)

// ReservationConfig configures the item reservation queue.
type ReservationConfig struct {
	Driver           string
	ConnectionString string
	Queue            string
	KafkaBrokers     []string
	Timeout          time.Duration
}

// DeliveryConfig configures the delivery notification endpoint.
type DeliveryConfig struct {
	BaseURL   string
	AccessKey string
	Timeout   time.Duration
}

// URL returns the endpoint URL: the base URL with the access key appended.
func (c DeliveryConfig) URL() string {
	return c.BaseURL + c.AccessKey
}

// CatalogConfig configures catalog lookups.
type CatalogConfig struct {
	BaseURL      string
	CacheEnabled bool
	CacheTTL     time.Duration
	RedisAddr    string
}

func MustInit() {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("error while loading .env file: " + err.Error())
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/checkout-svc")
	viper.AddConfigPath(".")
	SetDefaults()
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	SetupLogger()
}

// SetDefaults registers defaults and lets the environment override any key,
// e.g. RESERVATION_CONNECTION_STRING for reservation.connection_string.
func SetDefaults() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("reservation.driver", DriverRabbitMQ)
	viper.SetDefault("reservation.queue", "orderitems")
	viper.SetDefault("reservation.timeout_seconds", defaultTimeoutSeconds)
	viper.SetDefault("delivery.timeout_seconds", defaultTimeoutSeconds)
	viper.SetDefault("catalog.cache.ttl_seconds", defaultCacheTTLSeconds)
	viper.SetDefault("postgres.migrations_path", "./migrations")
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}

// Reservation reads the reservation section.
func Reservation() ReservationConfig {
	return ReservationConfig{
		Driver:           viper.GetString("reservation.driver"),
		ConnectionString: viper.GetString("reservation.connection_string"),
		Queue:            viper.GetString("reservation.queue"),
		KafkaBrokers:     viper.GetStringSlice("reservation.kafka.brokers"),
		Timeout:          seconds("reservation.timeout_seconds", defaultTimeoutSeconds),
	}
}

// Delivery reads the delivery section.
func Delivery() DeliveryConfig {
	return DeliveryConfig{
		BaseURL:   viper.GetString("delivery.base_url"),
		AccessKey: viper.GetString("delivery.access_key"),
		Timeout:   seconds("delivery.timeout_seconds", defaultTimeoutSeconds),
	}
}

// Catalog reads the catalog section.
func Catalog() CatalogConfig {
	return CatalogConfig{
		BaseURL:      viper.GetString("catalog.base_url"),
		CacheEnabled: viper.GetBool("catalog.cache.enabled"),
		CacheTTL:     seconds("catalog.cache.ttl_seconds", defaultCacheTTLSeconds),
		RedisAddr:    viper.GetString("redis.addr"),
	}
}

// seconds reads key as a number of seconds. Non-positive values fall back.
func seconds(key string, fallback int) time.Duration {
	n := viper.GetInt(key)
	if n <= 0 {
		n = fallback
	}

	return time.Duration(n) * time.Second
}
