package config

import (
	"github.com/spf13/viper"
)

const (
	// DefaultKey is the placeholder encryption key shipped with the app.
	DefaultKey = "base64:your-secret-key-here"

	// DefaultCipher is the cipher name advertised in the app table.
	DefaultCipher = "AES-256-CBC"
)

// DefaultFeatures returns the feature table used when nothing overrides it.
func DefaultFeatures() Features {
	return Features{
		"authentication": true,
		"authorization":  true,
		"caching":        true,
		"logging":        true,
		"notifications":  true,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "GeStock App")
	v.SetDefault("app.version", "1.0")
	v.SetDefault("app.env", "production")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.url", "http://localhost")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.key", DefaultKey)
	v.SetDefault("app.cipher", DefaultCipher)
	v.SetDefault("app.locale", "en")
	v.SetDefault("app.fallbacklocale", "en")

	// leaf defaults so a partial [app.features] table in main.toml merges
	for name, enabled := range DefaultFeatures() {
		v.SetDefault("app.features."+name, enabled)
	}

	v.SetDefault("app.maintenance.driver", "file")
	v.SetDefault("app.maintenance.file", "storage/framework/down")

	v.SetDefault("db.engine", EngineMySQL)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306) //nolint:mnd
	v.SetDefault("db.user", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "gestock_db")
	v.SetDefault("db.charset", "utf8mb4")

	v.SetDefault("webserver.port", 8080)      //nolint:mnd
	v.SetDefault("webserver.shutdowntime", 5) //nolint:mnd
	v.SetDefault("webserver.session.expirytime", "24h")
	v.SetDefault("webserver.session.table", "sessions")

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "gestock")
	v.SetDefault("log.servicename", "gestock-web")
	v.SetDefault("log.console.enabled", true)
}

// applyEnv overrides config values with the environment variables the app
// has always honoured.
func applyEnv(c *Config, env *Env) {
	c.App.Env = env.Resolve("APP_ENV", c.App.Env)
	c.App.Debug = env.ResolveBool("APP_DEBUG", c.App.Debug)
	c.App.URL = env.Resolve("APP_URL", c.App.URL)
	c.App.Timezone = env.Resolve("APP_TIMEZONE", c.App.Timezone)
	c.App.Key = env.Resolve("APP_KEY", c.App.Key)
	c.App.Locale = env.Resolve("APP_LOCALE", c.App.Locale)
	c.App.FallbackLocale = env.Resolve("APP_FALLBACK_LOCALE", c.App.FallbackLocale)
	c.App.Maintenance.Driver = env.Resolve("MAINTENANCE_DRIVER", c.App.Maintenance.Driver)

	c.DB.Engine = env.Resolve("DB_ENGINE", c.DB.Engine)
	c.DB.Host = env.Resolve("DB_HOST", c.DB.Host)
	c.DB.Port = env.ResolveInt("DB_PORT", c.DB.Port)
	c.DB.Name = env.Resolve("DB_NAME", c.DB.Name)
	c.DB.User = env.Resolve("DB_USER", c.DB.User)
	c.DB.Password = env.Resolve("DB_PASSWORD", c.DB.Password)
	c.DB.Charset = env.Resolve("DB_CHARSET", c.DB.Charset)

	c.Webserver.Port = env.ResolveInt("WEB_PORT", c.Webserver.Port)
	c.Log.LogLevel = env.Resolve("LOG_LEVEL", c.Log.LogLevel)
}
