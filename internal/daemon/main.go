// Package daemon wires the database, the runtime services and the web
// service together.
package daemon

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/gestock/gestock/internal/config"
	"github.com/gestock/gestock/internal/db"
	"github.com/gestock/gestock/internal/feature"
	"github.com/gestock/gestock/internal/logger"
	"github.com/gestock/gestock/internal/maintenance"
	"github.com/gestock/gestock/internal/web"
	"github.com/gestock/gestock/internal/web/handler"
	"github.com/gestock/gestock/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	conn       *db.Connection
	webService *web.Service
	messages   *logger.MessageLog
}

// Start runs the web service until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	defer d.close()

	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	d.messages.Log("web service listening", map[string]any{"addr": addr, "env": d.cfg.App.Env}, logger.LevelInfo)

	return d.webService.Start(addr)
}

func (d *Daemon) close() {
	if err := d.conn.Close(); err != nil {
		log.Error().Err(err).Msg("closing database connection")
	}
}

// New opens the database and builds every service the web service needs.
// A database that cannot be reached is returned as db.ErrConnect.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err = conn.Migrate(ctx); err != nil {
		_ = conn.Close()

		return nil, err
	}

	features := feature.New(conn.Gorm(), cfg.App.Features)

	driver, err := maintenance.New(cfg, conn.Gorm())
	if err != nil {
		_ = conn.Close()

		return nil, err
	}

	webService, err := web.New(cfg, web.Deps{
		Deps: handler.Deps{
			Features: features,
			Sessions: session.New(cfg, session.NewStorage(cfg)),
		},
		Maintenance: driver,
	})
	if err != nil {
		_ = conn.Close()

		return nil, errors.Wrap(err, "create web service")
	}

	return &Daemon{
		cfg:        cfg,
		conn:       conn,
		webService: webService,
		messages:   logger.NewMessageLogFromConfig(cfg.Log),
	}, nil
}
