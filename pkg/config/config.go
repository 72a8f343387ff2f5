package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "PROFILESPOT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "PROFILESPOT_APP_ENV"
	EnvPort         = "PROFILESPOT_APP_PORT"
	EnvDBDSN        = "PROFILESPOT_DB_DSN"
	EnvDBHost       = "PROFILESPOT_DB_HOST"
	EnvDBUser       = "PROFILESPOT_DB_USER"
	EnvDBName       = "PROFILESPOT_DB_NAME"
	EnvRedisURL     = "PROFILESPOT_REDIS_URL"
	EnvUseSQLite    = "PROFILESPOT_USE_SQLITE"
	EnvSQLitePath   = "PROFILESPOT_SQLITE_PATH"
	EnvCORSOrigins  = "PROFILESPOT_CORS_ORIGINS"
	EnvStaticDir    = "PROFILESPOT_STATIC_DIR"
	EnvLoginIPLimit = "PROFILESPOT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	HTTP          HTTPConfig
	Metrics       MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PROFILESPOT_APP_ENV" required:"true"`
	Port         string `envconfig:"PROFILESPOT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PROFILESPOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PROFILESPOT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"PROFILESPOT_DB_DSN"`
	SQLitePath string `envconfig:"PROFILESPOT_SQLITE_PATH" default:"profilespot.db"`

	LegacyHost     string `envconfig:"PROFILESPOT_DB_HOST"`
	LegacyPort     int    `envconfig:"PROFILESPOT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PROFILESPOT_DB_USER"`
	LegacyPassword string `envconfig:"PROFILESPOT_DB_PASSWORD"`
	LegacyName     string `envconfig:"PROFILESPOT_DB_NAME"`
	LegacySSLMode  string `envconfig:"PROFILESPOT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PROFILESPOT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROFILESPOT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROFILESPOT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROFILESPOT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; leaving both URL and Address empty disables the
// login rate limiter.
type RedisConfig struct {
	URL          string        `envconfig:"PROFILESPOT_REDIS_URL"`
	Address      string        `envconfig:"PROFILESPOT_REDIS_ADDR"`
	Password     string        `envconfig:"PROFILESPOT_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROFILESPOT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROFILESPOT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROFILESPOT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROFILESPOT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROFILESPOT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROFILESPOT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PROFILESPOT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"PROFILESPOT_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PROFILESPOT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PROFILESPOT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PROFILESPOT_AUTO_MIGRATE" default:"false"`
}

type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"PROFILESPOT_CORS_ORIGINS" default:"http://localhost:3000"`
	StaticDir       string        `envconfig:"PROFILESPOT_STATIC_DIR"`
	ReadTimeout     time.Duration `envconfig:"PROFILESPOT_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"PROFILESPOT_HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"PROFILESPOT_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"PROFILESPOT_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"PROFILESPOT_METRICS_PATH" default:"/metrics"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
