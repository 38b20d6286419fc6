// Package db opens the single database connection of the process.
package db

import (
	"context"
	"database/sql"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gestock/gestock/internal/config"
	"github.com/gestock/gestock/internal/db/dsn"
	"github.com/gestock/gestock/internal/db/models"
)

// Connection is the one live database handle. Queries are sent as server
// side prepared statements and errors are always returned, never swallowed.
type Connection struct {
	gorm *gorm.DB
	sql  *sql.DB
}

// Open connects to the configured database and checks it with a ping.
// The pool is capped at a single connection that lives as long as the
// process. Any failure is reported as a *ConnectError.
func Open(ctx context.Context, cfg *config.Config) (*Connection, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logMode(cfg)),
	})
	if err != nil {
		return nil, &ConnectError{Err: err}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, &ConnectError{Err: err}
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()

		return nil, &ConnectError{Err: err}
	}

	log.Debug().Str("engine", cfg.DB.Engine).Str("name", cfg.DB.Name).Msg("database connected")

	return &Connection{gorm: gormDB, sql: sqlDB}, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	source := dsn.Create(cfg)

	switch cfg.DB.Engine {
	case config.EngineMySQL, "":
		return gormmysql.New(gormmysql.Config{DSN: source}), nil
	case config.EnginePostgres:
		return postgres.Open(source), nil
	case config.EngineSQLite:
		return sqlite.Open(source), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedEngine, "engine %q", cfg.DB.Engine)
	}
}

func logMode(cfg *config.Config) gormlogger.LogLevel {
	if cfg.DevMode {
		return gormlogger.Info
	}

	return gormlogger.Warn
}

// Gorm exposes the ORM handle for the controllers.
func (c *Connection) Gorm() *gorm.DB {
	return c.gorm
}

// Migrate creates or updates the tables owned by the application.
func (c *Connection) Migrate(ctx context.Context) error {
	return errors.Wrap(c.gorm.WithContext(ctx).AutoMigrate(&models.Setting{}), "migrate")
}

// Rows runs query and returns each row as a column name to value map.
func (c *Connection) Rows(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows := []map[string]any{}

	if err := c.gorm.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query rows")
	}

	return rows, nil
}

// Exec runs a statement and returns the number of affected rows.
func (c *Connection) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	result := c.gorm.WithContext(ctx).Exec(query, args...)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "exec")
	}

	return result.RowsAffected, nil
}

// Ping checks that the connection is still alive.
func (c *Connection) Ping(ctx context.Context) error {
	return errors.Wrap(c.sql.PingContext(ctx), "ping")
}

// Close releases the connection.
func (c *Connection) Close() error {
	return errors.Wrap(c.sql.Close(), "close")
}
