package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	JotForm  JotFormConfig
	Forms    FormsConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	SeedDemoJobs  bool
	WebhookSecret string
	// WSAllowedOrigins restricts browser websocket subscribers; empty
	// allows any origin.
	WSAllowedOrigins []string
}

type DatabaseConfig struct {
	Driver     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	SQLitePath string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MigrationsDir string
}

// Enabled reports whether an account store has been configured at all.
func (c DatabaseConfig) Enabled() bool {
	switch c.Driver {
	case DriverSQLite:
		return c.SQLitePath != ""
	default:
		return c.DBHost != ""
	}
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	// KeyPrefix namespaces every key this service writes.
	KeyPrefix string
	// SharedCooldown moves the provider cool-down into Redis so every
	// instance backs off together.
	SharedCooldown bool
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type JotFormConfig struct {
	BaseURL        string
	APIKey         string
	FormID         string
	PageSize       int
	Spacing        time.Duration
	CooldownPeriod time.Duration
	CacheTTL       time.Duration
	StatusSync     bool
	ProbesFile     string
}

type FormsConfig struct {
	Provider    string
	CompanyName string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
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
	optInt := func(key string, def int) int {
		raw := opt(key)
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
	optBool := func(key string) bool {
		b, _ := strconv.ParseBool(opt(key))
		return b
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		SeedDemoJobs:  optBool("SEED_DEMO_JOBS"),
		WebhookSecret: opt("WEBHOOK_SECRET"),
	}
	for _, o := range strings.Split(opt("WS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.App.WSAllowedOrigins = append(cfg.App.WSAllowedOrigins, o)
		}
	}

	cfg.Database = DatabaseConfig{
		Driver:                optDefault("DB_DRIVER", DriverPostgres),
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		SQLitePath:            opt("DB_SQLITE_PATH"),
		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		MigrationsDir:         optDefault("DB_MIGRATIONS_DIR", "migrations"),
	}
	if cfg.Database.Driver != DriverPostgres && cfg.Database.Driver != DriverSQLite {
		invalid = append(invalid, "DB_DRIVER")
	}

	cfg.Redis = RedisConfig{
		Enabled:        optBool("REDIS_ENABLED"),
		Host:           optDefault("REDIS_HOST", "localhost"),
		Port:           optDefault("REDIS_PORT", "6379"),
		Password:       opt("REDIS_PASSWORD"),
		DB:             optInt("REDIS_DB", 0),
		KeyPrefix:      optDefault("REDIS_KEY_PREFIX", "recruitai:"),
		SharedCooldown: optBool("REDIS_SHARED_COOLDOWN"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.JotForm = JotFormConfig{
		BaseURL:        optDefault("JOTFORM_BASE_URL", "https://api.jotform.com"),
		APIKey:         opt("JOTFORM_API_KEY"),
		FormID:         req("JOTFORM_FORM_ID"),
		PageSize:       optInt("JOTFORM_PAGE_SIZE", 50),
		Spacing:        optDuration("JOTFORM_REQUEST_SPACING", 2*time.Second),
		CooldownPeriod: optDuration("JOTFORM_COOLDOWN", 60*time.Second),
		CacheTTL:       optDuration("JOTFORM_CACHE_TTL", 5*time.Minute),
		StatusSync:     optBool("JOTFORM_STATUS_SYNC"),
		ProbesFile:     opt("JOTFORM_PROBES_FILE"),
	}

	cfg.Forms = FormsConfig{
		Provider:    strings.ToLower(optDefault("FORM_PROVIDER", "jotform")),
		CompanyName: optDefault("FORM_COMPANY_NAME", "RecruitAI"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
