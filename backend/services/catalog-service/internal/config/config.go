package config

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/golang-jwt/jwt/v5"
	"github.com/robfig/cron/v3"

	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

const (
	OrganizationName = utils.OrganizationName

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	defaultAppName            = "catalog-service"
	defaultSupportedLanguages = "NL,EN,DE"
)

// build-time overrides, set with -ldflags (same scheme as other services)
var (
	AppName string
)

// PublicKey decodes a base64 wrapped PEM RSA public key from the environment.
type PublicKey struct {
	Key *rsa.PublicKey
}

func (p *PublicKey) UnmarshalEnvironmentValue(data string) error {
	if strings.TrimSpace(data) == "" {
		return nil
	}
	pemBytes, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return fmt.Errorf("could not decode base64-encoded public key: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return fmt.Errorf("could not parse RSA public key: %w", err)
	}
	p.Key = key
	return nil
}

type Config struct {
	OrganizationName string
	AppName          string

	AppPort string `env:"APP_PORT,default=8080"`
	AppUrl  string `env:"APP_URL_FROM_ANYWHERE,default=http://localhost:8080"`

	// postgres | sqlite
	DBDriver   string `env:"DB_DRIVER,default=sqlite"`
	DBUrl      string `env:"DB_URL"`
	SQLitePath string `env:"SQLITE_PATH,default=catalog.db"`

	JWTPublicKey *PublicKey `env:"JWT_PUBLIC_KEY_BASE64"`

	UserLanguage       string `env:"USER_LANGUAGE,default=NL"`
	SystemLanguage     string `env:"SYSTEM_LANGUAGE,default=EN"`
	SupportedLanguages string `env:"SUPPORTED_LANGUAGES"`
	PageSize           int    `env:"PAGE_SIZE,default=5"`

	// cron expression for refreshing the record gauges; empty disables the job
	StatsRefreshSchedule string `env:"STATS_REFRESH_SCHEDULE,default=@every 1m"`

	SeedDBWithTestData bool `env:"SEED_DB_WITH_TEST_DATA,default=true"`
	CORSHighSecurity   bool `env:"CORS_HIGH_SECURITY,default=false"`
}

// LoadConfig reads the environment and exits on invalid configuration.
func LoadConfig() *Config {
	if AppName == "" {
		AppName = defaultAppName
		utils.Logger.Warnf("AppName was not provided via ldflags; using %q", AppName)
	}
	utils.Logger.Info("Loading config for app: ", AppName)

	cfg, err := NewConfig()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	if cfg.PublicKey() == nil {
		utils.Logger.Warn("JWT_PUBLIC_KEY_BASE64 not set; authenticated endpoints will reject every request")
	}
	utils.Logger.Infof("Loaded config for %s (driver=%s)", cfg.AppName, cfg.DBDriver)
	return cfg
}

// NewConfig decodes and validates the environment without exiting.
func NewConfig() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, err
	}
	cfg.OrganizationName = OrganizationName
	cfg.AppName = AppName
	if cfg.AppName == "" {
		cfg.AppName = defaultAppName
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize fills defaults and checks cross-field constraints.
func (c *Config) Normalize() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DBDriverPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("DB_URL is required when DB_DRIVER=%s", DBDriverPostgres)
		}
	case DBDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DB_DRIVER=%s", DBDriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	c.UserLanguage = strings.ToUpper(strings.TrimSpace(c.UserLanguage))
	c.SystemLanguage = strings.ToUpper(strings.TrimSpace(c.SystemLanguage))
	if len(c.UserLanguage) != 2 || len(c.SystemLanguage) != 2 {
		return fmt.Errorf("USER_LANGUAGE and SYSTEM_LANGUAGE must be two-letter codes")
	}
	if strings.TrimSpace(c.SupportedLanguages) == "" {
		c.SupportedLanguages = defaultSupportedLanguages
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	c.StatsRefreshSchedule = strings.TrimSpace(c.StatsRefreshSchedule)
	if c.StatsRefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.StatsRefreshSchedule); err != nil {
			return fmt.Errorf("invalid STATS_REFRESH_SCHEDULE %q: %w", c.StatsRefreshSchedule, err)
		}
	}
	return nil
}

// Languages returns the supported language codes, always including the
// user and system languages.
func (c *Config) Languages() []string {
	seen := map[string]bool{}
	var out []string
	add := func(code string) {
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) == 2 && !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	add(c.UserLanguage)
	add(c.SystemLanguage)
	for _, code := range strings.Split(c.SupportedLanguages, ",") {
		add(code)
	}
	return out
}

// PublicKey is nil when no verifier key is configured.
func (c *Config) PublicKey() *rsa.PublicKey {
	if c.JWTPublicKey == nil {
		return nil
	}
	return c.JWTPublicKey.Key
}
