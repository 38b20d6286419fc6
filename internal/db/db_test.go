package db

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestock/gestock/internal/config"
)

func sqliteConfig() *config.Config {
	return &config.Config{
		DB: config.DB{Engine: config.EngineSQLite, Name: ":memory:"},
	}
}

func openTestDB(t *testing.T) *Connection {
	t.Helper()

	conn, err := Open(context.Background(), sqliteConfig())
	require.NoError(t, err)

	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestOpenSingleConnection(t *testing.T) {
	conn := openTestDB(t)

	assert.Equal(t, 1, conn.sql.Stats().MaxOpenConnections)
	require.NoError(t, conn.Ping(context.Background()))
}

func TestOpenUnsupportedEngine(t *testing.T) {
	cfg := sqliteConfig()
	cfg.DB.Engine = "oracle"

	conn, err := Open(context.Background(), cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnsupportedEngine)
	assert.Nil(t, conn)
}

func TestOpenUnreachable(t *testing.T) {
	cfg := &config.Config{
		DB: config.DB{
			Engine: config.EngineMySQL,
			Host:   "127.0.0.1",
			Port:   1, // nothing listens here
			User:   "root",
			Name:   "gestock_db",
		},
	}

	conn, err := Open(context.Background(), cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrConnect)
	assert.Contains(t, err.Error(), "database connection failed: ")
	assert.Nil(t, conn)

	var connectErr *ConnectError
	require.True(t, errors.As(err, &connectErr))
	assert.NotNil(t, connectErr.Err)
}

func TestRows(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	_, err := conn.Exec(ctx, "CREATE TABLE products (id INTEGER PRIMARY KEY, name TEXT, price REAL)")
	require.NoError(t, err)

	affected, err := conn.Exec(ctx, "INSERT INTO products (id, name, price) VALUES (?, ?, ?), (?, ?, ?)",
		1, "Widget", 9.5, 2, "Gadget", 20.0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	rows, err := conn.Rows(ctx, "SELECT id, name, price FROM products WHERE price > ? ORDER BY id", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), cast.ToInt64(rows[0]["id"]))
	assert.Equal(t, "Widget", cast.ToString(rows[0]["name"]))
	assert.InDelta(t, 9.5, cast.ToFloat64(rows[0]["price"]), 0.0001)
	assert.Equal(t, "Gadget", cast.ToString(rows[1]["name"]))

	empty, err := conn.Rows(ctx, "SELECT id FROM products WHERE id = ?", 42)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRowsErrorIsReturned(t *testing.T) {
	conn := openTestDB(t)

	rows, err := conn.Rows(context.Background(), "SELECT * FROM missing_table")
	require.Error(t, err)
	assert.Nil(t, rows)
}

func TestMigrate(t *testing.T) {
	conn := openTestDB(t)

	require.NoError(t, conn.Migrate(context.Background()))
	assert.True(t, conn.Gorm().Migrator().HasTable("settings"))
}
