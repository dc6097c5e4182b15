package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, ":3000", cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 8*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.UsesInsecureSecret())
}

func TestFromViper_ProductionRequiresSecret(t *testing.T) {
	_, err := FromViper(newViper(map[string]interface{}{"APP_ENV": "production"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg, err := FromViper(newViper(map[string]interface{}{
		"APP_ENV":    "production",
		"JWT_SECRET": "s3cret",
		"APP_PORT":   "8080",
		"DB_DRIVER":  "Postgres",
	}))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, ":8080", cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.False(t, cfg.UsesInsecureSecret())
}

func TestFromViper_RejectsBadValues(t *testing.T) {
	_, err := FromViper(newViper(map[string]interface{}{"DB_DRIVER": "mysql"}))
	assert.Error(t, err)

	_, err = FromViper(newViper(map[string]interface{}{"JWT_TTL": "0s"}))
	assert.Error(t, err)

	_, err = FromViper(newViper(map[string]interface{}{"DATABASE_DSN": ""}))
	assert.Error(t, err)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
}
