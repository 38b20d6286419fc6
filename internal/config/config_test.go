package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envNames = []string{
	"APP_ENV", "APP_DEBUG", "APP_URL", "APP_TIMEZONE", "APP_KEY", "APP_LOCALE",
	"APP_FALLBACK_LOCALE", "MAINTENANCE_DRIVER", "DB_ENGINE", "DB_HOST", "DB_PORT",
	"DB_NAME", "DB_USER", "DB_PASSWORD", "DB_CHARSET", "WEB_PORT", "LOG_LEVEL",
	JSONOverrideEnv,
}

// clearEnv blanks every variable ReadConfig looks at. Empty counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range envNames {
		t.Setenv(name, "")
	}
}

func validConfig() Config {
	return Config{
		App: App{
			Name:           "GeStock App",
			Env:            "production",
			URL:            "http://localhost",
			Timezone:       "UTC",
			Locale:         "en",
			FallbackLocale: "en",
			Maintenance:    Maintenance{Driver: "file"},
		},
		DB: DB{
			Engine: EngineMySQL,
			Name:   "gestock_db",
		},
		Webserver: Webserver{
			Port: 8080,
		},
	}
}

func TestReadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ReadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "GeStock App", cfg.App.Name)
	assert.Equal(t, "1.0", cfg.App.Version)
	assert.Equal(t, "production", cfg.App.Env)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "http://localhost", cfg.App.URL)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, DefaultKey, cfg.App.Key)
	assert.Equal(t, DefaultCipher, cfg.App.Cipher)
	assert.Equal(t, "en", cfg.App.Locale)
	assert.Equal(t, "en", cfg.App.FallbackLocale)
	assert.Equal(t, "file", cfg.App.Maintenance.Driver)
	assert.Equal(t, DefaultFeatures(), cfg.App.Features)

	assert.Equal(t, EngineMySQL, cfg.DB.Engine)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, "gestock_db", cfg.DB.Name)
	assert.Equal(t, "root", cfg.DB.User)
	assert.Empty(t, cfg.DB.Password)
	assert.Equal(t, "utf8mb4", cfg.DB.Charset)

	assert.Equal(t, 8080, cfg.Webserver.Port)
	assert.Equal(t, 24*time.Hour, cfg.Webserver.Session.ExpiryTime)
}

func TestReadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)

	t.Setenv("APP_ENV", "local")
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("APP_URL", "https://stock.example.com")
	t.Setenv("APP_TIMEZONE", "Europe/Paris")
	t.Setenv("APP_LOCALE", "fr")
	t.Setenv("MAINTENANCE_DRIVER", "database")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "stock")
	t.Setenv("DB_USER", "gestock")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_CHARSET", "utf8")
	t.Setenv("DB_PORT", "3307")

	cfg, err := ReadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.App.Env)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "https://stock.example.com", cfg.App.URL)
	assert.Equal(t, "Europe/Paris", cfg.App.Timezone)
	assert.Equal(t, "fr", cfg.App.Locale)
	assert.Equal(t, "en", cfg.App.FallbackLocale)
	assert.Equal(t, "database", cfg.App.Maintenance.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "stock", cfg.DB.Name)
	assert.Equal(t, "gestock", cfg.DB.User)
	assert.Equal(t, "s3cret", cfg.DB.Password)
	assert.Equal(t, "utf8", cfg.DB.Charset)
	assert.Equal(t, 3307, cfg.DB.Port)
}

func TestReadConfigFileThenEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	content := `
[app]
name = "GeStock Staging"
env = "staging"

[app.features]
notifications = false

[db]
host = "file-host"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600))

	t.Setenv("DB_HOST", "env-host")

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "GeStock Staging", cfg.App.Name)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "env-host", cfg.DB.Host, "environment wins over the file")
	assert.False(t, cfg.App.Features.Enabled("notifications"))
	assert.True(t, cfg.App.Features.Enabled("logging"))
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	clearEnv(t)

	t.Setenv(JSONOverrideEnv, `{"App":{"Name":"Test Override"},"Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.App.Name)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.Equal(t, "production", cfg.App.Env)
}

func TestReadConfigBadJSONOverride(t *testing.T) {
	clearEnv(t)

	t.Setenv(JSONOverrideEnv, `{"App":`)

	_, err := ReadConfig(t.TempDir())
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(_ *Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Webserver.Port = 0 },
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name:    "missing URL",
			mutate:  func(c *Config) { c.App.URL = "" },
			wantErr: ErrEmptyURL,
		},
		{
			name:    "malformed URL",
			mutate:  func(c *Config) { c.App.URL = "not a url" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *Config) { c.App.Timezone = "Mars/Olympus" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown maintenance driver",
			mutate:  func(c *Config) { c.App.Maintenance.Driver = "redis" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.DB.Engine = "oracle" },
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := validate(&cfg)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidationDefaultsShutDownTime(t *testing.T) {
	cfg := validConfig()

	require.NoError(t, validate(&cfg))
	assert.Equal(t, 5, cfg.Webserver.ShutDownTime)
}

func TestValidationMessagesFollowLocale(t *testing.T) {
	cfg := validConfig()
	cfg.App.Maintenance.Driver = "redis"

	err := validate(&cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "must be one of")
	assert.Contains(t, err.Error(), "Config.App.Maintenance.Driver")

	cfg.App.Locale = "fr"

	err = validate(&cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.NotContains(t, err.Error(), "must be one of")

	// unsupported locale falls back
	cfg.App.Locale = "de"
	cfg.App.FallbackLocale = "en"

	err = validate(&cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestEnvResolve(t *testing.T) {
	env := NewEnv()

	t.Setenv("GESTOCK_TEST_SET", "value")
	t.Setenv("GESTOCK_TEST_EMPTY", "")

	assert.Equal(t, "value", env.Resolve("GESTOCK_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", env.Resolve("GESTOCK_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", env.Resolve("GESTOCK_TEST_NEVER_SET", "fallback"))
}

func TestEnvResolveBool(t *testing.T) {
	env := NewEnv()

	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"(true)", false, true},
		{"1", false, true},
		{"false", true, false},
		{"(false)", true, false},
		{"0", true, false},
		{"", true, true},
		{"maybe", true, true},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("GESTOCK_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, env.ResolveBool("GESTOCK_TEST_BOOL", tt.fallback))
		})
	}
}

func TestEnvResolveInt(t *testing.T) {
	env := NewEnv()

	t.Setenv("GESTOCK_TEST_INT", "42")
	assert.Equal(t, 42, env.ResolveInt("GESTOCK_TEST_INT", 1))

	t.Setenv("GESTOCK_TEST_INT", "forty-two")
	assert.Equal(t, 1, env.ResolveInt("GESTOCK_TEST_INT", 1))
}

func TestApply(t *testing.T) {
	previous := time.Local

	t.Cleanup(func() { time.Local = previous })

	cfg := validConfig()
	cfg.App.Timezone = "Asia/Tokyo"

	require.NoError(t, cfg.Apply())
	assert.Equal(t, "Asia/Tokyo", time.Local.String())

	cfg.App.Timezone = "Nowhere/Special"
	require.Error(t, cfg.Apply())
}

func TestDumpConfig(t *testing.T) {
	cfg := validConfig()
	cfg.App.Key = "base64:c2VjcmV0"
	cfg.DB.Password = "hunter2"

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)

	assert.Contains(t, tomlStr, "GeStock App")
	assert.NotContains(t, tomlStr, "hunter2")
	assert.NotContains(t, tomlStr, "c2VjcmV0")
	assert.Equal(t, "hunter2", cfg.DB.Password, "dump must not mutate the config")
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := validConfig()
	cfg.DB.Password = "hunter2"

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(jsonStr, "{"))
	assert.Contains(t, jsonStr, "gestock_db")
	assert.NotContains(t, jsonStr, "hunter2")
}
