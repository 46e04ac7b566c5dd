package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"production"`
	AppPort string `env:"APP_PORT" envDefault:"8080"`
	Version string `env:"VERSION" envDefault:"dev"`

	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"2"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	JWTSecret  string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"720h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Redis is optional; the task list cache is disabled when neither
	// REDIS_URL nor REDIS_ADDR is set.
	RedisURL      string        `env:"REDIS_URL"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	// DevEndpointsEnabled mounts /api/dev/*. Off unless set explicitly and
	// never allowed in production.
	DevEndpointsEnabled bool `env:"DEV_ENDPOINTS_ENABLED" envDefault:"false"`

	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse builds the config from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AppEnv == "" {
		return errors.New("APP_ENV must not be empty")
	}
	if c.DevEndpointsEnabled && c.IsProduction() {
		return errors.New("DEV_ENDPOINTS_ENABLED cannot be set when APP_ENV=production")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// SeedingAllowed returns an error unless the sample data utility may wipe
// the database. APP_ENV defaults to production, so it must be set explicitly.
func (c *Config) SeedingAllowed() error {
	if c.IsProduction() {
		return fmt.Errorf("seeding is disabled when APP_ENV=%s", c.AppEnv)
	}
	return nil
}

// RedisEnabled reports whether a Redis endpoint was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisAddr != ""
}
