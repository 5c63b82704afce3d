package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(nil))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DevSecret, cfg.JWTSecret)
	assert.True(t, cfg.UsingDevSecret)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.RateLimit.RedisURL)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{
		"PORT":                 "9090",
		"JWT_SECRET":           "abc",
		"STORE_DRIVER":         "memory",
		"DB_TIMEOUT":           "3",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"LOGIN_RATE_WINDOW":    "1m",
		"LOGIN_RATE_LIMIT":     "not-a-number",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "abc", cfg.JWTSecret)
	assert.False(t, cfg.UsingDevSecret)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 3*time.Second, cfg.Database.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, int64(10), cfg.RateLimit.Limit)
}

func TestLoadFrom_ProductionSecretRules(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr error
	}{
		{name: "missing", secret: "", wantErr: ErrMissingSecret},
		{name: "dev default", secret: DevSecret, wantErr: ErrDefaultSecret},
		{name: "too short", secret: "short", wantErr: ErrWeakSecret},
		{name: "ok", secret: strings.Repeat("x", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := map[string]string{"APP_ENV": EnvProduction}
			if tt.secret != "" {
				vars["JWT_SECRET"] = tt.secret
			}
			cfg, err := LoadFrom(mapLookup(vars))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "json", cfg.LogFormat)
			assert.False(t, cfg.UsingDevSecret)
		})
	}
}

func TestLoadFrom_UnknownDriver(t *testing.T) {
	_, err := LoadFrom(mapLookup(map[string]string{"STORE_DRIVER": "sqlite"}))
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestLoadFrom_SecretRulesOutsideLocalEnvironments(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		secret  string
		wantErr error
	}{
		{name: "misspelled production", env: "prod", wantErr: ErrMissingSecret},
		{name: "staging with dev default", env: "staging", secret: DevSecret, wantErr: ErrDefaultSecret},
		{name: "staging with short secret", env: "staging", secret: "short", wantErr: ErrWeakSecret},
		{name: "staging with strong secret", env: "staging", secret: strings.Repeat("s", 32)},
		{name: "test without secret", env: EnvTest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := map[string]string{"APP_ENV": tt.env}
			if tt.secret != "" {
				vars["JWT_SECRET"] = tt.secret
			}
			cfg, err := LoadFrom(mapLookup(vars))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.env == EnvTest, cfg.UsingDevSecret)
		})
	}
}

func TestLoadFrom_TrustedProxies(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{"TRUSTED_PROXIES": "10.0.0.0/8, 192.168.1.10,::1"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10", "::1"}, cfg.TrustedProxies)

	_, err = LoadFrom(mapLookup(map[string]string{"TRUSTED_PROXIES": "proxy.internal"}))
	require.ErrorIs(t, err, ErrInvalidProxy)
}
