// Package session builds the fiber session store on the configured database.
package session

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"

	"github.com/gestock/gestock/internal/config"
	"github.com/gestock/gestock/internal/db/dsn"
)

// DefaultTable is used when webserver.session.table is empty.
const DefaultTable = "sessions"

// NewStorage returns the session storage for the database engine. SQLite
// has no fiber storage, so sessions are kept in memory there and nil is
// returned.
func NewStorage(cfg *config.Config) fiber.Storage {
	table := cfg.Webserver.Session.Table
	if table == "" {
		table = DefaultTable
	}

	switch cfg.DB.Engine {
	case config.EngineMySQL, "":
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         table,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         table,
		})
	default:
		log.Warn().Str("engine", cfg.DB.Engine).Msg("no session storage for engine, sessions are kept in memory")

		return nil
	}
}

// New creates the session store. A nil storage keeps sessions in memory.
func New(cfg *config.Config, storage fiber.Storage) *session.Store {
	return session.NewStore(session.Config{
		Storage:        storage,
		IdleTimeout:    cfg.Webserver.Session.ExpiryTime,
		CookieHTTPOnly: true,
		CookieSecure:   !cfg.DevMode && isHTTPS(cfg.App.URL),
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

func isHTTPS(url string) bool {
	return strings.HasPrefix(strings.ToLower(url), "https://")
}
