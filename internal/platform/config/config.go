package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	KafkaBrokers    []string
	KafkaEventTopic string
	EnableKafka     bool

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	EmailAPIURL string
	EmailAPIKey string
	EmailFrom   string

	ImageAPIURL string
	ImageAPIKey string

	AdminRateLimit   int
	AdminRateWindow  time.Duration
	PublicRateLimit  int
	PublicRateWindow time.Duration

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "vesalius"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}

	topic := os.Getenv("KAFKA_EVENT_TOPIC")
	if topic == "" {
		topic = "vesalius.identity.events"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		KafkaBrokers:    brokers,
		KafkaEventTopic: topic,
		EnableKafka:     envBool("ENABLE_KAFKA_PUBLISHER", false) && len(brokers) > 0,

		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:   os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),

		EmailAPIURL: os.Getenv("EMAIL_API_URL"),
		EmailAPIKey: os.Getenv("EMAIL_API_KEY"),
		EmailFrom:   envDefault("EMAIL_FROM", "no-reply@vesalius.health"),

		ImageAPIURL: os.Getenv("IMAGE_API_URL"),
		ImageAPIKey: os.Getenv("IMAGE_API_KEY"),

		AdminRateLimit:   envInt("ADMIN_RATE_LIMIT", 30),
		AdminRateWindow:  envDuration("ADMIN_RATE_WINDOW", time.Minute),
		PublicRateLimit:  envInt("PUBLIC_RATE_LIMIT", 10),
		PublicRateWindow: envDuration("PUBLIC_RATE_WINDOW", time.Minute),

		OutboxPollInterval: envDuration("OUTBOX_POLL_INTERVAL", 5*time.Second),
		OutboxBatchSize:    envInt("OUTBOX_BATCH_SIZE", 100),
	}, nil
}

func envDefault(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
