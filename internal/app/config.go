package app

import (
	"strings"
	"time"

	"github.com/yungbote/storefront-backend/internal/data/db"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/envutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	DB db.Config

	// AdminJWTSecret signs staff tokens; the admin API is not mounted without it.
	AdminJWTSecret string
	AdminTokenTTL  time.Duration

	Metrics observability.Config
	Otel    observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		HTTPAddr:        envutil.String("HTTP_ADDR", ":8080", log),
		ShutdownTimeout: envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second, log),
		CORSOrigins:     splitList(envutil.String("CORS_ALLOWED_ORIGINS", "", log)),
		DB:              db.ConfigFromEnv(log),
		AdminJWTSecret:  envutil.String("ADMIN_JWT_SECRET", "", log),
		AdminTokenTTL:   envutil.Duration("ADMIN_TOKEN_TTL", 12*time.Hour, log),
		Metrics: observability.Config{
			Enabled:        envutil.Bool("METRICS_ENABLED", false, log),
			Addr:           envutil.String("METRICS_ADDR", "", log),
			LatencySLO:     envutil.Duration("METRICS_LATENCY_SLO", 500*time.Millisecond, log),
			ScrapeInterval: envutil.Duration("METRICS_DB_SCRAPE_INTERVAL", 10*time.Second, log),
		},
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "storefront-api", log),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development", log),
			Version:     envutil.String("OTEL_SERVICE_VERSION", "", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: float64(envutil.Int("OTEL_SAMPLE_PERCENT", 100, log)) / 100,
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
