package config

import (
	"os"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration values
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// SiteConfigPath points to a YAML site document. Empty means the
	// embedded default.
	SiteConfigPath string

	// AppScriptURL overrides the spreadsheet endpoint of the site document.
	AppScriptURL string
	RelayTimeout time.Duration

	RedisURL  string
	DedupeTTL time.Duration

	AllowedOrigins []string

	// StaticDir serves wasm_exec.js and landing.wasm under /static.
	StaticDir string

	GA4MeasurementID string
	GTMContainerID   string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SiteConfigPath:   os.Getenv("SITE_CONFIG"),
		AppScriptURL:     os.Getenv("APPSCRIPT_URL"),
		RelayTimeout:     getDuration("RELAY_TIMEOUT", 10*time.Second),
		RedisURL:         os.Getenv("REDIS_URL"),
		DedupeTTL:        getDuration("DEDUPE_TTL", 10*time.Minute),
		AllowedOrigins:   splitList(os.Getenv("ALLOWED_ORIGINS")),
		StaticDir:        getEnv("STATIC_DIR", "web/static"),
		GA4MeasurementID: os.Getenv("GA4_MEASUREMENT_ID"),
		GTMContainerID:   os.Getenv("GTM_CONTAINER_ID"),
	}
}

// IsProduction gates analytics tag injection.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
