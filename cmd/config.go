// Package cmd wires configuration and the composition root for the service
// binary.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config carries everything the service reads from the environment. Policy
// knobs (delays, cooldown, pricing) are configuration, never code.
type Config struct {
	HTTPPort string `validate:"required"`

	DBHost     string `validate:"required"`
	DBPort     string `validate:"required"`
	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBName     string `validate:"required"`
	DBSslMode  string `validate:"required"`

	KafkaBrokers            []string `validate:"min=1"`
	KafkaNotificationsTopic string   `validate:"required"`

	PaymentProviderBaseURL string `validate:"required,url"`
	PaymentKeyID           string `validate:"required"`
	PaymentKeySecret       string `validate:"required"`
	PaymentWebhookSecret   string `validate:"required"`
	Currency               string `validate:"required,len=3"`

	// Assignment scheduling. The initial delay is how long an order sits in
	// placed before the first attempt; the retry interval applies when no
	// partner was eligible; the cooldown is the fairness window per partner.
	AssignmentInitialDelay  time.Duration `validate:"gt=0"`
	AssignmentRetryInterval time.Duration `validate:"gt=0"`
	PartnerCooldown         time.Duration `validate:"gt=0"`
	AssignmentSweepSchedule string        `validate:"required"`
	AssignmentBatchSize     int           `validate:"gt=0"`

	// Pricing policy, amounts in minor currency units.
	TaxRatePercent        int   `validate:"gte=0,lte=100"`
	DeliveryFee           int64 `validate:"gte=0"`
	FreeDeliveryThreshold int64 `validate:"gte=0"`

	StaleOrderAge      time.Duration `validate:"gt=0"`
	StaleGaugeSchedule string        `validate:"required"`
}

// LoadConfig builds the configuration from environment variables, applying
// defaults for the policy knobs, and validates the result.
func LoadConfig() (Config, error) {
	cfg := Config{
		HTTPPort:   envString("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envString("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envString("DB_SSLMODE", "disable"),

		KafkaBrokers:            splitList(envString("KAFKA_BROKERS", "")),
		KafkaNotificationsTopic: envString("KAFKA_NOTIFICATIONS_TOPIC", "order-notifications"),

		PaymentProviderBaseURL: os.Getenv("PAYMENT_PROVIDER_BASE_URL"),
		PaymentKeyID:           os.Getenv("PAYMENT_KEY_ID"),
		PaymentKeySecret:       os.Getenv("PAYMENT_KEY_SECRET"),
		PaymentWebhookSecret:   os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		Currency:               envString("CURRENCY", "INR"),

		AssignmentSweepSchedule: envString("ASSIGNMENT_SWEEP_SCHEDULE", "*/5 * * * * *"),
		StaleGaugeSchedule:      envString("STALE_GAUGE_SCHEDULE", "0 * * * * *"),
	}

	var err error
	if cfg.AssignmentInitialDelay, err = envDuration("ASSIGNMENT_INITIAL_DELAY", 2*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.AssignmentRetryInterval, err = envDuration("ASSIGNMENT_RETRY_INTERVAL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.PartnerCooldown, err = envDuration("PARTNER_COOLDOWN", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.StaleOrderAge, err = envDuration("STALE_ORDER_AGE", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.AssignmentBatchSize, err = envInt("ASSIGNMENT_BATCH_SIZE", 50); err != nil {
		return Config{}, err
	}
	if cfg.TaxRatePercent, err = envInt("TAX_RATE_PERCENT", 5); err != nil {
		return Config{}, err
	}
	if cfg.DeliveryFee, err = envInt64("DELIVERY_FEE", 4000); err != nil {
		return Config{}, err
	}
	if cfg.FreeDeliveryThreshold, err = envInt64("FREE_DELIVERY_THRESHOLD", 29900); err != nil {
		return Config{}, err
	}

	if err = validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// DSN renders the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
