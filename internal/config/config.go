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

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Invoice  InvoiceConfig
	OTEL     OTELConfig

	MessagePollInterval time.Duration
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	LogLevel      string
	CORSOrigins   []string
	MigrationsDir string
	AutoMigrate   bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
	SlowQueryThreshold    time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type InvoiceConfig struct {
	Renderer   string
	ChromePath string
	Currency   string
}

type OTELConfig struct {
	Enabled        bool
	Endpoint       string
	ServiceVersion string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads the process environment, after merging an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.Getenv)
}

func FromLookup(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	flag := func(key string, def bool) bool {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		LogLevel:      opt("LOG_LEVEL", "info"),
		CORSOrigins:   splitList(opt("CORS_ORIGINS", "*")),
		MigrationsDir: opt("MIGRATIONS_DIR", "migrations"),
		AutoMigrate:   flag("DB_AUTO_MIGRATE", false),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", "localhost"),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", "jobni"),
		DBUser:                opt("DB_USER", "postgres"),
		DBPassword:            opt("DB_PASSWORD", ""),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(num("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(num("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		SlowQueryThreshold:    dur("DB_SLOW_QUERY_THRESHOLD", 500*time.Millisecond),
	}

	access := req("JWT_ACCESS_SECRET")
	cfg.JWT = JWTConfig{
		AccessSecret:     access,
		RefreshSecret:    opt("JWT_REFRESH_SECRET", access+":refresh"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 30*24*time.Hour),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 90*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       num("REDIS_DB", 0),
		TTL:      dur("REDIS_TTL", 2*time.Minute),
	}

	cfg.Invoice = InvoiceConfig{
		Renderer:   strings.ToLower(opt("INVOICE_RENDERER", "html")),
		ChromePath: opt("CHROME_PATH", ""),
		Currency:   opt("INVOICE_CURRENCY", "SAR"),
	}
	if cfg.Invoice.Renderer != "html" && cfg.Invoice.Renderer != "pdf" {
		invalid = append(invalid, "INVOICE_RENDERER")
	}

	cfg.OTEL = OTELConfig{
		Enabled:        flag("OTEL_ENABLED", false),
		Endpoint:       opt("OTEL_ENDPOINT", "localhost:4317"),
		ServiceVersion: opt("OTEL_SERVICE_VERSION", "dev"),
	}

	cfg.MessagePollInterval = dur("MESSAGE_POLL_INTERVAL", 3*time.Second)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
