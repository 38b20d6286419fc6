package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gestock/gestock/internal/config"
)

func TestNewStorageSQLiteIsMemory(t *testing.T) {
	cfg := &config.Config{DB: config.DB{Engine: config.EngineSQLite, Name: ":memory:"}}

	assert.Nil(t, NewStorage(cfg))
}

func TestNew(t *testing.T) {
	cfg := &config.Config{
		App:       config.App{URL: "https://stock.example.com"},
		Webserver: config.Webserver{Session: config.Session{ExpiryTime: 2 * time.Hour}},
	}

	store := New(cfg, nil)
	assert.Equal(t, 2*time.Hour, store.IdleTimeout)
	assert.True(t, store.CookieHTTPOnly)
	assert.True(t, store.CookieSecure)
	assert.NotNil(t, store.Storage, "nil storage falls back to memory")

	cfg.DevMode = true
	assert.False(t, New(cfg, nil).CookieSecure)

	cfg.DevMode = false
	cfg.App.URL = "http://localhost"
	assert.False(t, New(cfg, nil).CookieSecure)
}
