package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "CALZALINDO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "CALZALINDO_APP_ENV"
	EnvDBDSN  = "CALZALINDO_DB_DSN"
	EnvDBHost = "CALZALINDO_DB_HOST"
	EnvDBUser = "CALZALINDO_DB_USER"
	EnvDBName = "CALZALINDO_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Admin         AdminConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Pricing       PricingConfig
	Catalog       CatalogConfig
	Images        ImagesConfig
	Inquiry       InquiryConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"CALZALINDO_APP_ENV" required:"true"`
	Port         string `envconfig:"CALZALINDO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CALZALINDO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CALZALINDO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CALZALINDO_DB_DSN"`
	Driver string `envconfig:"CALZALINDO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CALZALINDO_DB_HOST"`
	LegacyPort     int    `envconfig:"CALZALINDO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CALZALINDO_DB_USER"`
	LegacyPassword string `envconfig:"CALZALINDO_DB_PASSWORD"`
	LegacyName     string `envconfig:"CALZALINDO_DB_NAME"`
	LegacySSLMode  string `envconfig:"CALZALINDO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CALZALINDO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CALZALINDO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CALZALINDO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CALZALINDO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver targets SQLite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"CALZALINDO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CALZALINDO_REDIS_ADDR"`
	Password     string        `envconfig:"CALZALINDO_REDIS_PASSWORD"`
	DB           int           `envconfig:"CALZALINDO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CALZALINDO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CALZALINDO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CALZALINDO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CALZALINDO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CALZALINDO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CALZALINDO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CALZALINDO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CALZALINDO_JWT_EXPIRATION_MINUTES" default:"480"`
}

// AdminConfig holds the shared back-office credential.
type AdminConfig struct {
	// PasswordHash is an argon2id encoded hash. A plain value is also
	// accepted so local setups can skip hashing.
	PasswordHash string `envconfig:"CALZALINDO_ADMIN_PASSWORD_HASH" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CALZALINDO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CALZALINDO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CALZALINDO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CALZALINDO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CALZALINDO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"CALZALINDO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"CALZALINDO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
}

// PricingConfig drives the commercial price derivation. The coefficients
// changed repeatedly over the product's life, so they are configuration
// rather than literals.
type PricingConfig struct {
	CashCoefficient  float64 `envconfig:"CALZALINDO_PRICING_CASH_COEFFICIENT" default:"0.6645118001522601"`
	DebitCoefficient float64 `envconfig:"CALZALINDO_PRICING_DEBIT_COEFFICIENT" default:"0.7342675389359863"`
	// RoundListOnly restores the legacy behavior where only the list
	// price received commercial rounding.
	RoundListOnly bool `envconfig:"CALZALINDO_PRICING_ROUND_LIST_ONLY" default:"false"`
}

type CatalogConfig struct {
	DefaultLimit int `envconfig:"CALZALINDO_CATALOG_DEFAULT_LIMIT" default:"2000"`
	MaxLimit     int `envconfig:"CALZALINDO_CATALOG_MAX_LIMIT" default:"5000"`
}

type ImagesConfig struct {
	LookupBaseURL   string        `envconfig:"CALZALINDO_IMAGES_LOOKUP_BASE_URL" required:"true"`
	LookupTimeout   time.Duration `envconfig:"CALZALINDO_IMAGES_LOOKUP_TIMEOUT" default:"5s"`
	PageLimit       int           `envconfig:"CALZALINDO_IMAGES_PAGE_LIMIT" default:"500"`
	BatchSize       int           `envconfig:"CALZALINDO_IMAGES_BATCH_SIZE" default:"10"`
	BatchPause      time.Duration `envconfig:"CALZALINDO_IMAGES_BATCH_PAUSE" default:"100ms"`
	ProxyBaseExt    string        `envconfig:"CALZALINDO_IMAGES_PROXY_BASE_EXTERNAL"`
	ProxyBaseInt    string        `envconfig:"CALZALINDO_IMAGES_PROXY_BASE_INTERNAL"`
	ProxyTimeout    time.Duration `envconfig:"CALZALINDO_IMAGES_PROXY_TIMEOUT" default:"3s"`
	PlaceholderPath string        `envconfig:"CALZALINDO_IMAGES_PLACEHOLDER" default:"/no_image.png"`
}

type InquiryConfig struct {
	SchemaVersion  string        `envconfig:"CALZALINDO_INQUIRY_SCHEMA_VERSION" default:"1"`
	TTL            time.Duration `envconfig:"CALZALINDO_INQUIRY_TTL" default:"168h"`
	WhatsAppNumber string        `envconfig:"CALZALINDO_INQUIRY_WHATSAPP_NUMBER" default:"5491234567890"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CALZALINDO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		return fmt.Errorf("%s is required when the sqlite driver is selected", EnvDBDSN)
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
