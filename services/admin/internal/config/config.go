package config

import (
	"os"

	pkgconfig "github.com/userwale/projetskillhub/pkg/config"
)

const defaultPort = 8071

type Config struct {
	pkgconfig.Base

	ActivationKey string
	InstructorURL string
	LearnerURL    string
}

func Load() Config {
	cfg := Config{
		Base:          pkgconfig.LoadBase(defaultPort),
		ActivationKey: os.Getenv("ADMIN_ACTIVATION_KEY"),
		InstructorURL: pkgconfig.EnvDefault("INSTRUCTOR_URL", "http://localhost:8072"),
		LearnerURL:    pkgconfig.EnvDefault("LEARNER_URL", "http://localhost:8073"),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "admin"
	}

	pkgconfig.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	pkgconfig.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	pkgconfig.MustNonEmpty(cfg.ActivationKey, "ADMIN_ACTIVATION_KEY")

	return cfg
}
