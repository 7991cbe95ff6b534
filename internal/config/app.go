package config

import (
	"log"
	"os"
	"sync"
)

const (
	SourceREST     = "rest"
	SourcePostgres = "postgres"
)

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	BaseURL      string
	AllowOrigins string
	ReportSource string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		source := getEnv("REPORT_SOURCE", SourceREST)
		if source != SourceREST && source != SourcePostgres {
			log.Printf("Warning: unknown REPORT_SOURCE %q, defaulting to %s", source, SourceREST)
			source = SourceREST
		}
		appConfig = &AppConfig{
			Name:         getEnv("APP_NAME", "V-Recruit Backend"),
			Env:          env,
			Port:         getEnv("APP_PORT", ":5000"),
			BaseURL:      os.Getenv("APP_URL"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
			ReportSource: source,
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
