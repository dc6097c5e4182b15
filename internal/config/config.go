package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevelopmentJWTSecret is only ever used when APP_ENV=development and no
// JWT_SECRET is provided.
const DevelopmentJWTSecret = "development-insecure-secret"

// Config is the application configuration, read once at startup.
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	DB   DBConfig
	JWT  JWTConfig
	Auth AuthConfig
	Log  LogConfig
}

// AppConfig holds general settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// IsDevelopment reports whether the app runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPConfig holds the listener settings.
type HTTPConfig struct {
	Port string
}

// DBConfig selects the GORM dialector and its DSN.
type DBConfig struct {
	Driver string // postgres or sqlite
	DSN    string
}

// JWTConfig holds the token signing settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// AuthConfig holds password hashing settings.
type AuthConfig struct {
	BcryptCost int
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from the environment, after preloading an
// optional .env file. Environment variables always win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return FromViper(v)
}

// FromViper builds a Config from an already prepared viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	ttl := v.GetDuration("JWT_TTL")
	if ttl <= 0 {
		return nil, fmt.Errorf("config: JWT_TTL must be a positive duration, got %q", v.GetString("JWT_TTL"))
	}

	cfg := &Config{
		App: AppConfig{
			Env:  strings.ToLower(v.GetString("APP_ENV")),
			Name: v.GetString("APP_NAME"),
		},
		HTTP: HTTPConfig{
			Port: normalizePort(v.GetString("APP_PORT")),
		},
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    ttl,
		},
		Auth: AuthConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "agrofeira")
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "agrofeira.db")
	v.SetDefault("JWT_TTL", "8h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LOG_LEVEL", "info")
}

// Validate checks the configuration and fills development-only fallbacks.
// Outside development a missing JWT secret is a startup error.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if !c.App.IsDevelopment() {
			return errors.New("config: JWT_SECRET is required outside development")
		}
		c.JWT.Secret = DevelopmentJWTSecret
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("config: DATABASE_DSN is required")
	}
	return nil
}

// UsesInsecureSecret reports whether the development fallback secret is active.
func (c *Config) UsesInsecureSecret() bool {
	return c.JWT.Secret == DevelopmentJWTSecret
}

func normalizePort(p string) string {
	if p != "" && !strings.Contains(p, ":") {
		return ":" + p
	}
	return p
}
