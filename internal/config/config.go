// Package config provides application configuration assembled from layered
// sources: per-environment defaults, an optional .env.<environment> file, and
// process environment variables (highest priority). A single flat Config
// struct replaces per-environment subclassing; the APP_ENV tag selects which
// default set is applied before overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment is the deployment environment tag.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvBeta        Environment = "beta"
	EnvProduction  Environment = "production"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS and the
// secret used to sign internal tokens. SecretKey has no default in
// production; startup fails when it is absent there.
type SecurityConfig struct {
	SecretKey  string
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// RateLimitConfig defines the token-bucket thresholds for the HTTP rate
// limiter. Disabled in development by default.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64 // tokens per second (>= 0)
	Burst   int     // bucket size (>= 1)
}

// AIConfig defines the model backend used for prompt processing.
//
// Provider selects the client implementation: "ollama" targets a local
// model server speaking the /api/generate protocol; "openai" targets a
// hosted OpenAI-compatible API. Timeout bounds a single Generate call and
// differs by environment (long in development to tolerate slow local
// inference, shorter in production).
type AIConfig struct {
	Provider  string        // ollama|openai
	BaseURL   string        // model endpoint (e.g. "http://localhost:11434")
	APIKey    string        // hosted-API key; unused by the local provider
	Model     string        // model identifier
	MaxTokens int           // completion cap for hosted models
	Timeout   time.Duration // per-generate timeout
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Environment
	Env Environment

	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // must exceed AI.Timeout or slow local models get cut off
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Store
	DBPath   string // SQLite path
	PoolSize int    // max open/idle connections

	// Model backend
	AI AIConfig

	// Web protection
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig

	// Observability
	OTEL OTELConfig
}

// IsProduction reports whether the production default set is active.
func (c Config) IsProduction() bool { return c.Env == EnvProduction }

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load resolves the environment tag, applies that environment's defaults,
// layers the optional .env.<environment> file on top, reads process
// environment overrides, and validates the result.
func Load() (Config, error) {
	env := resolveEnv()

	// Layer 2: environment file. Missing files are fine; godotenv.Load never
	// overwrites variables already present in the process environment, which
	// preserves the defaults < file < process-env precedence.
	_ = godotenv.Load(".env." + string(env))

	cfg := defaultsFor(env)

	// Layer 3: process environment (plus whatever the env file injected).
	cfg.Port = getenv("PORT", cfg.Port)
	cfg.ReadTimeout = getdur("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.ReadHeaderTimeout = getdur("READ_HEADER_TIMEOUT", cfg.ReadHeaderTimeout)
	cfg.WriteTimeout = getdur("WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.IdleTimeout = getdur("IDLE_TIMEOUT", cfg.IdleTimeout)
	cfg.MaxHeaderBytes = getint("MAX_HEADER_BYTES", cfg.MaxHeaderBytes)
	cfg.GinMode = strings.ToLower(getenv("GIN_MODE", cfg.GinMode))

	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL", cfg.LogLevel))
	cfg.LogPretty = getbool("LOG_PRETTY", cfg.LogPretty)
	cfg.SwaggerEnabled = getbool("SWAGGER_ENABLED", cfg.SwaggerEnabled)
	cfg.APIBasePath = normalizeBasePath(getenv("API_BASE_PATH", cfg.APIBasePath))

	cfg.DBPath = getenv("DB_PATH", cfg.DBPath)
	cfg.PoolSize = getint("DB_POOL_SIZE", cfg.PoolSize)

	cfg.AI.Provider = strings.ToLower(getenv("AI_PROVIDER", cfg.AI.Provider))
	cfg.AI.BaseURL = strings.TrimRight(getenv("AI_MODEL_URL", cfg.AI.BaseURL), "/")
	cfg.AI.APIKey = getenv("AI_MODEL_API_KEY", cfg.AI.APIKey)
	cfg.AI.Model = getenv("AI_MODEL", cfg.AI.Model)
	cfg.AI.MaxTokens = getint("AI_MAX_TOKENS", cfg.AI.MaxTokens)
	cfg.AI.Timeout = getdur("AI_TIMEOUT", cfg.AI.Timeout)

	if v := getenv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		cfg.CORS.AllowedOrigins = splitCSV(v)
	}
	cfg.Security.SecretKey = getenv("SECRET_KEY", cfg.Security.SecretKey)
	cfg.Security.EnableHSTS = getbool("ENABLE_HSTS", cfg.Security.EnableHSTS)
	cfg.Security.HSTSMaxAge = getdur("HSTS_MAX_AGE", cfg.Security.HSTSMaxAge)

	cfg.RateLimit.Enabled = getbool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.RPS = getfloat("RATE_RPS", cfg.RateLimit.RPS)
	cfg.RateLimit.Burst = getint("RATE_BURST", cfg.RateLimit.Burst)

	cfg.OTEL.Enabled = getbool("OTEL_ENABLED", cfg.OTEL.Enabled)
	cfg.OTEL.Endpoint = getenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTEL.Endpoint)
	cfg.OTEL.Insecure = getbool("OTEL_EXPORTER_OTLP_INSECURE", cfg.OTEL.Insecure)
	cfg.OTEL.ServiceName = getenv("OTEL_SERVICE_NAME", cfg.OTEL.ServiceName)
	cfg.OTEL.SampleRatio = getfloat("OTEL_TRACES_SAMPLER_ARG", cfg.OTEL.SampleRatio)

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.PoolSize < 1 {
		return cfg, errors.New("DB_POOL_SIZE must be >= 1")
	}
	switch cfg.AI.Provider {
	case "ollama", "openai":
	default:
		return cfg, fmt.Errorf("AI_PROVIDER %q not supported (ollama, openai)", cfg.AI.Provider)
	}
	if strings.TrimSpace(cfg.AI.Model) == "" {
		return cfg, errors.New("AI_MODEL must not be empty")
	}
	if cfg.AI.Timeout <= 0 {
		return cfg, errors.New("AI_TIMEOUT must be > 0")
	}
	if cfg.RateLimit.RPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateLimit.Burst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	// The secret must be supplied externally in production; everywhere else a
	// development placeholder is acceptable.
	if cfg.Env == EnvProduction && strings.TrimSpace(cfg.Security.SecretKey) == "" {
		return cfg, errors.New("SECRET_KEY must be set in production")
	}

	return cfg, nil
}

// resolveEnv maps APP_ENV (fallback ENVIRONMENT) to a known environment tag,
// accepting common aliases. Unknown values fall back to development.
func resolveEnv() Environment {
	v := os.Getenv("APP_ENV")
	if v == "" {
		v = os.Getenv("ENVIRONMENT")
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "production", "prod":
		return EnvProduction
	case "beta", "staging":
		return EnvBeta
	default:
		return EnvDevelopment
	}
}

// defaultsFor returns the baseline Config for an environment before any file
// or environment-variable override is applied.
func defaultsFor(env Environment) Config {
	cfg := Config{
		Env:               env,
		Port:              "8080",
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		GinMode:           "release",

		LogLevel:       "info",
		LogPretty:      false,
		SwaggerEnabled: false,
		APIBasePath:    "/api/v1",

		DBPath:   "prompts.db",
		PoolSize: 10,

		AI: AIConfig{
			Provider:  "ollama",
			BaseURL:   "http://localhost:11434",
			Model:     "qwen3-coder:30b",
			MaxTokens: 4096,
			Timeout:   30 * time.Second,
		},

		Security: SecurityConfig{
			SecretKey:  "dev-secret-change-me",
			EnableHSTS: false,
			HSTSMaxAge: 180 * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 5.0, Burst: 10},
		OTEL: OTELConfig{
			Enabled:     false,
			Endpoint:    "localhost:4317",
			Insecure:    true,
			ServiceName: "go-prompt-backend",
			SampleRatio: 1.0,
		},
	}

	switch env {
	case EnvDevelopment:
		cfg.GinMode = "debug"
		cfg.LogLevel = "debug"
		cfg.LogPretty = true
		cfg.SwaggerEnabled = true
		cfg.DBPath = "prompts_dev.db"
		cfg.PoolSize = 5
		cfg.RateLimit.Enabled = false
		// Local inference can be slow; give the model plenty of room.
		cfg.AI.Timeout = 2 * time.Minute
	case EnvBeta:
		cfg.DBPath = "prompts_beta.db"
		cfg.CORS.AllowedOrigins = []string{
			"https://beta.yourapp.com",
			"https://staging.yourapp.com",
		}
		cfg.RateLimit = RateLimitConfig{Enabled: true, RPS: 3.5, Burst: 20}
	case EnvProduction:
		cfg.LogLevel = "warn"
		cfg.PoolSize = 20
		cfg.CORS.AllowedOrigins = []string{
			"https://yourapp.com",
			"https://www.yourapp.com",
			"https://api.yourapp.com",
		}
		cfg.RateLimit = RateLimitConfig{Enabled: true, RPS: 2.0, Burst: 10}
		cfg.AI = AIConfig{
			Provider:  "openai",
			BaseURL:   "",
			Model:     "gpt-4o-mini",
			MaxTokens: 4096,
			Timeout:   60 * time.Second,
		}
		cfg.Security.SecretKey = "" // must be supplied externally
		cfg.Security.EnableHSTS = true
	}
	return cfg
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
