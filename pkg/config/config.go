package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	Quote        QuoteConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KITBOX_APP_ENV" required:"true"`
	Port         string `envconfig:"KITBOX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KITBOX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KITBOX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"KITBOX_DB_DSN"`
	Driver string `envconfig:"KITBOX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KITBOX_DB_HOST"`
	LegacyPort     int    `envconfig:"KITBOX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KITBOX_DB_USER"`
	LegacyPassword string `envconfig:"KITBOX_DB_PASSWORD"`
	LegacyName     string `envconfig:"KITBOX_DB_NAME"`
	LegacySSLMode  string `envconfig:"KITBOX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KITBOX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KITBOX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KITBOX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KITBOX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KITBOX_REDIS_URL" required:"true"`
	Address      string        `envconfig:"KITBOX_REDIS_ADDR"`
	Password     string        `envconfig:"KITBOX_REDIS_PASSWORD"`
	DB           int           `envconfig:"KITBOX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KITBOX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KITBOX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KITBOX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KITBOX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KITBOX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig carries the tunable amounts the price engine layers on top of
// the parts subtotal. Values are decimal strings so cent precision survives.
type PricingConfig struct {
	TaxRatePercent       string `envconfig:"KITBOX_PRICING_TAX_RATE_PERCENT" default:"21"`
	StandardDeliveryCost string `envconfig:"KITBOX_PRICING_STANDARD_DELIVERY" default:"39.90"`
	AssemblyBasePrice    string `envconfig:"KITBOX_PRICING_ASSEMBLY_BASE" default:"49.90"`
	AssemblyPerExtraComp string `envconfig:"KITBOX_PRICING_ASSEMBLY_PER_COMPARTMENT" default:"15.00"`
	AssemblyPerDoor      string `envconfig:"KITBOX_PRICING_ASSEMBLY_PER_DOOR" default:"9.90"`
}

type QuoteConfig struct {
	ValidityDays   int           `envconfig:"KITBOX_QUOTE_VALIDITY_DAYS" default:"30"`
	IdempotencyTTL time.Duration `envconfig:"KITBOX_QUOTE_IDEMPOTENCY_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"KITBOX_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"KITBOX_AUTO_MIGRATE" default:"false"`
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
