package config

import (
	"time"

	"github.com/gestock/gestock/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	App       App
	DB        DB
	Log       logger.Log
	Webserver Webserver
}

// App holds the application table: identity, environment, locale and toggles.
type App struct {
	Name           string `validate:"required"`
	Version        string
	Env            string `validate:"required"`
	Debug          bool
	URL            string `validate:"required,url"`
	Timezone       string `validate:"required,timezone"`
	Key            string // encryption key, "base64:<...>" form enables cookie encryption
	Cipher         string
	Locale         string `validate:"required"`
	FallbackLocale string `validate:"required"`
	Features       Features
	Maintenance    Maintenance
}

// Features maps a feature name to its enabled state.
type Features map[string]bool

// Enabled reports whether the named feature is switched on. Unknown features are off.
func (f Features) Enabled(name string) bool {
	return f[name]
}

// Maintenance selects how the maintenance flag is stored.
type Maintenance struct {
	Driver string `validate:"oneof=file database"`
	File   string // marker file used by the file driver
}

// Session settings.
type Session struct {
	ExpiryTime time.Duration
	Table      string
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int     // listening port for the webserver
	ShutDownTime int     // wait time for shutdown
	Session      Session // session settings
}
