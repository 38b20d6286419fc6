// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/gestock/gestock/internal/config"
)

// Create builds the Data Source Name for the configured engine.
// An unknown engine yields an empty string.
func Create(cfg *config.Config) string {
	switch cfg.DB.Engine {
	case config.EngineMySQL, "":
		return MySQL(&cfg.DB)
	case config.EnginePostgres:
		return Postgres(&cfg.DB)
	case config.EngineSQLite:
		return SQLite(&cfg.DB)
	default:
		return ""
	}
}

// MySQL builds a go-sql-driver DSN. Placeholders are always sent to the
// server as real prepared statements.
func MySQL(db *config.DB) string {
	c := mysql.NewConfig()
	c.User = db.User
	c.Passwd = db.Password
	c.Net = "tcp"
	c.Addr = address(db.Host, db.Port)
	c.DBName = db.Name
	c.ParseTime = true
	c.InterpolateParams = false
	c.Params = map[string]string{}

	if db.Charset != "" {
		_ = c.Apply(mysql.Charset(db.Charset, ""))
	}

	for key, values := range extras(db.Extras) {
		if len(values) > 0 {
			c.Params[key] = values[len(values)-1]
		}
	}

	return c.FormatDSN()
}

// Postgres builds a postgres:// URL.
func Postgres(db *config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     address(db.Host, db.Port),
		Path:     "/" + db.Name,
		RawQuery: extras(db.Extras).Encode(),
	}

	return u.String()
}

// SQLite returns the database file name with the extras as query.
func SQLite(db *config.DB) string {
	if db.Extras == "" {
		return db.Name
	}

	return db.Name + "?" + db.Extras
}

// address joins host and port unless host already carries a port.
func address(host string, port int) string {
	if host == "" {
		host = "localhost"
	}

	if _, _, err := net.SplitHostPort(host); err == nil || port == 0 {
		return host
	}

	return net.JoinHostPort(host, strconv.Itoa(port))
}

func extras(raw string) url.Values {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return url.Values{}
	}

	return values
}
