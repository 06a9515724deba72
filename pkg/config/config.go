package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// DefaultAllowedOrigins are the front-ends allowed to call the service cross-origin.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",            // development
	"https://ys-financials.vercel.app", // production
}

// Config holds everything the service reads from the environment.
type Config struct {
	AppEnv       string
	IsStaging    bool
	IsProduction bool

	Host string
	Port string

	// StoreURI is the inquiry store connection string (MONGO_URI, falling back to DATABASE_URL).
	StoreURI     string
	StoreTimeout time.Duration

	AllowedOrigins []string
	TrustedProxies []string

	RateLimitWindow time.Duration
	RateLimitMax    int
	RedisURL        string

	LogLevel zapcore.Level

	MetricsEnabled bool
	SwaggerEnabled bool
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// loadAppEnv loads .env unless running in production. A missing .env file is fine.
func loadAppEnv() string {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		return appEnv
	}
	_ = godotenv.Load()
	return os.Getenv("APP_ENV")
}

// Load reads the environment (and .env outside production) into a validated Config.
func Load() (*Config, error) {
	appEnv := loadAppEnv()
	if appEnv == "" {
		appEnv = "development"
	}

	timeoutSecs, err := intEnv("STORE_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	windowSecs, err := intEnv("RATE_LIMIT_WINDOW_SECONDS", 900)
	if err != nil {
		return nil, err
	}
	rateMax, err := intEnv("RATE_LIMIT_MAX", 100)
	if err != nil {
		return nil, err
	}
	metricsEnabled, err := boolEnv("METRICS_ENABLED", false)
	if err != nil {
		return nil, err
	}
	swaggerEnabled, err := boolEnv("SWAGGER_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv: appEnv,
		Host:   os.Getenv("HOST"),
		Port:   getEnv("PORT", "5000"),

		StoreURI:     getEnv("MONGO_URI", os.Getenv("DATABASE_URL")),
		StoreTimeout: time.Duration(timeoutSecs) * time.Second,

		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS"), DefaultAllowedOrigins),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES"), nil),

		RateLimitWindow: time.Duration(windowSecs) * time.Second,
		RateLimitMax:    rateMax,
		RedisURL:        os.Getenv("REDIS_URL"),

		MetricsEnabled: metricsEnabled,
		SwaggerEnabled: swaggerEnabled,
	}

	level, err := zapcore.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks values that would make the service misbehave and sets derived flags.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"development", "staging", "production"}, c.AppEnv) {
		return fmt.Errorf("APP_ENV must be 'development', 'staging' or 'production', got %q", c.AppEnv)
	}
	c.IsStaging = c.AppEnv == "staging"
	c.IsProduction = c.AppEnv == "production"

	if c.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	for _, o := range c.AllowedOrigins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS: origin %q must start with http:// or https://", o)
		}
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be greater than 0")
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be greater than 0")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intEnv reads an integer variable. Unset means def; anything unparsable is an error.
func intEnv(key string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, s)
	}
	return v, nil
}

// boolEnv reads a boolean variable (strconv.ParseBool syntax). Unset means def.
func boolEnv(key string, def bool) (bool, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, s)
	}
	return v, nil
}

func splitList(s string, def []string) []string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
