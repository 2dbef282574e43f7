package config

import (
	"os"

	pkgconfig "github.com/userwale/projetskillhub/pkg/config"
)

const defaultPort = 8072

type Config struct {
	pkgconfig.Base

	UploadDir string

	ESURL      string
	ESUser     string
	ESPassword string
}

func Load() Config {
	cfg := Config{
		Base:      pkgconfig.LoadBase(defaultPort),
		UploadDir: pkgconfig.EnvDefault("UPLOAD_DIR", "uploads"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "instructor"
	}

	pkgconfig.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	pkgconfig.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	return cfg
}
