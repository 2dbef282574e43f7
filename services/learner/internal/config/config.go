package config

import (
	pkgconfig "github.com/userwale/projetskillhub/pkg/config"
)

const defaultPort = 8073

type Config struct {
	pkgconfig.Base

	InstructorURL string
}

func Load() Config {
	cfg := Config{
		Base:          pkgconfig.LoadBase(defaultPort),
		InstructorURL: pkgconfig.EnvDefault("INSTRUCTOR_URL", "http://localhost:8072"),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "learner"
	}

	pkgconfig.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	pkgconfig.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	return cfg
}
