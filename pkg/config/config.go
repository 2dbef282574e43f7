package config

import (
	"os"
	"strconv"
	"strings"
)

// Base carries the settings every role service shares. Services wrap it in
// their own internal/config with role-specific additions.
type Base struct {
	ServiceName string
	ServerPort  int

	DatabaseURL string

	JWTSecret []byte

	KafkaBrokers []string
}

func LoadBase(defaultPort int) Base {
	return Base{
		ServiceName: EnvDefault("SERVICE_NAME", ""),
		ServerPort:  EnvIntDefault("SERVER_PORT", defaultPort),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
