package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings. Values come from the process environment
// (optionally seeded from a .env file by the caller).
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENV" envDefault:"development"`
	Host        string `env:"HOST" envDefault:"http://localhost:8080"`

	// CORS: ALLOWED_ORIGINS (comma separated) wins over FRONTEND_URL.
	AllowedOriginsRaw string `env:"ALLOWED_ORIGINS"`
	FrontendURL       string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	AllowedOrigins    []string
	AllowedHost       string

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogCaller bool   `env:"LOG_CALLER" envDefault:"false"`

	LLMProvider        string        `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMModel           string        `env:"LLM_MODEL"`
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY"`
	AnthropicAPIKey    string        `env:"ANTHROPIC_API_KEY"`
	GoogleAPIKey       string        `env:"GOOGLE_API_KEY"`
	AzureAPIKey        string        `env:"AZURE_OPENAI_API_KEY"`
	AzureEndpoint      string        `env:"AZURE_OPENAI_ENDPOINT"`
	LLMTimeout         time.Duration `env:"LLM_TIMEOUT" envDefault:"20s"`
	LLMMaxRetries      uint64        `env:"LLM_MAX_RETRIES" envDefault:"2"`
	LLMRatePerSecond   float64       `env:"LLM_RATE_PER_SECOND" envDefault:"3"`
	LLMBurst           int           `env:"LLM_BURST" envDefault:"5"`
	LLMBreakerFailures uint32        `env:"LLM_BREAKER_FAILURES" envDefault:"5"`

	RedisURI string        `env:"REDIS_URI"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"8h"`

	CatalogFile         string `env:"CATALOG_FILE"`
	CloudinaryName      string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" envDefault:"products"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"feedbackhub-backend"`

	SeedDemoData       bool `env:"SEED_DEMO_DATA" envDefault:"false"`
	RateLimitPerMinute int  `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	SubmitLimit        int  `env:"SUBMIT_LIMIT" envDefault:"25"`
}

// Load parses the environment into a Config and fills in derived fields.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))

	// AllowedHost is only set in production; host check is skipped in development
	if cfg.IsProduction() {
		cfg.AllowedHost = hostname(cfg.Host)
	}

	cfg.AllowedOrigins = parseOrigins(cfg.AllowedOriginsRaw)
	if len(cfg.AllowedOrigins) == 0 {
		if u := strings.TrimSpace(cfg.FrontendURL); u != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, u)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	return cfg, nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// hostname strips scheme, path and port from a URL-ish host string.
func hostname(raw string) string {
	h := strings.TrimSpace(raw)
	for _, prefix := range []string{"https://", "http://"} {
		h = strings.TrimPrefix(h, prefix)
	}
	if idx := strings.Index(h, "/"); idx != -1 {
		h = h[:idx]
	}
	if idx := strings.Index(h, ":"); idx != -1 {
		h = h[:idx]
	}
	return strings.TrimSpace(h)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
