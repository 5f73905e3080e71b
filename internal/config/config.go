package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type KafkaConfig struct {
	Brokers    []string
	GroupID    string
	OrderTopic string
}

type WebsocketConfig struct {
	SendBuffer   int
	ReadLimit    int64
	PongTimeout  time.Duration
	PingInterval time.Duration
}

type SecurityConfig struct {
	// JWTSecret gates handshake authentication; empty leaves the websocket
	// endpoints open, matching the public tracking channels.
	JWTSecret string
}

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
	Security  SecurityConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Directory: getEnv("LOG_DIR", "./logs"),
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(firstEnv("KAFKA_BROKERS", "KAFKA_BROKER")),
			GroupID:    getEnv("KAFKA_GROUP_ID", "bistropulse-ws"),
			OrderTopic: getEnv("KAFKA_ORDER_TOPIC", "orders.changed"),
		},
		Security: SecurityConfig{
			JWTSecret: strings.TrimSpace(os.Getenv("WS_JWT_SECRET")),
		},
	}

	var err error
	if cfg.Websocket.SendBuffer, err = getEnvInt("WS_SEND_BUFFER", 8); err != nil {
		return nil, err
	}
	readLimit, err := getEnvInt("WS_READ_LIMIT", 1<<16)
	if err != nil {
		return nil, err
	}
	cfg.Websocket.ReadLimit = int64(readLimit)
	if cfg.Websocket.PongTimeout, err = getEnvDuration("WS_PONG_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.Websocket.PingInterval, err = getEnvDuration("WS_PING_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
