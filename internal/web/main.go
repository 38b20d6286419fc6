// Package web runs the fiber application: middlewares, pages, health check
// and metrics.
package web

import (
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/template/html/v3"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/gestock/gestock/internal/config"
	"github.com/gestock/gestock/internal/feature"
	"github.com/gestock/gestock/internal/id"
	fiberlogger "github.com/gestock/gestock/internal/logger/adapter/fiber"
	"github.com/gestock/gestock/internal/maintenance"
	"github.com/gestock/gestock/internal/web/csrf"
	"github.com/gestock/gestock/internal/web/handler"
	"github.com/gestock/gestock/internal/web/handler/home"
	maintenancemiddleware "github.com/gestock/gestock/internal/web/middleware/maintenance"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"
)

// Deps are the collaborators of the web service.
type Deps struct {
	handler.Deps
	Maintenance maintenance.Driver
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start listens on addr until the app is shut down.
func (s *Service) Start(addr string) error {
	err := s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: !s.cfg.DevMode})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "fiber listen")
	}

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the app gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown stops the app. Unless fast shutdown is set, /checkalive fails
// for webserver.shutdowntime seconds first so load balancers drain the pod.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates the web service.
func New(cfg *config.Config, deps Deps) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if deps.Features == nil || deps.Sessions == nil || deps.Maintenance == nil {
		return nil, errors.New(handler.ErrNilACDFatalLogMsg)
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.App.Name,
			CaseSensitive:  true,
			Immutable:      true,
			Views:          newTemplateEngine(cfg),
			ErrorHandler:   handler.ErrorHandler,
			JSONEncoder:    json.Marshal,
			JSONDecoder:    json.Unmarshal,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Use(requestid.New(requestid.Config{Generator: id.NewUUID}))

	if deps.Features.Enabled(feature.Logging) {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Config:        cfg.Log,
			CheckAliveURI: CheckAlivePath,
		}))
	}

	if key, ok := cfg.App.CookieKey(); ok {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: key}))
	} else {
		log.Warn().Msg("app.key is not a base64: key of 16, 24 or 32 bytes, cookies are not encrypted")
	}

	app.Use(maintenancemiddleware.New(maintenancemiddleware.Config{
		Driver: deps.Maintenance,
		Render: true,
	}))

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(csrf.New(csrf.Config{
		Store: deps.Sessions,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == CheckAlivePath || c.Path() == MetricsPath
		},
		ContextKey: handler.CSRFLocal,
	}))

	if err := home.Handler.Init(app, cfg, deps.Deps); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *Service) checkAlive(c fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	engine := html.NewFileSystem(http.FS(templateFS()), ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		engine = html.New("./internal/web/templates", ".gohtml")
		engine.Reload(true)

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	for name, fn := range templateFuncs() {
		engine.AddFunc(name, fn)
	}

	return engine
}
