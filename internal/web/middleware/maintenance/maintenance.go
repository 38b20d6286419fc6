// Package maintenance answers 503 while the application is down.
//
// The health check and the metrics endpoint stay reachable so that load
// balancers and scrapers can tell a maintenance window from an outage.
//
// Usage:
//
//	app.Use(maintenance.New(maintenance.Config{Driver: driver}))
package maintenance

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/gestock/gestock/internal/maintenance"
)

// TemplateName is rendered while down.
const TemplateName = "maintenance"

// Config implements the fiber middleware settings.
type Config struct {
	// Driver stores the maintenance state.
	//
	// Required.
	Driver maintenance.Driver

	// Except lists path prefixes served while down.
	//
	// Optional. Default: ["/checkalive", "/metrics"]
	Except []string

	// Render answers with the maintenance template. When false a plain text
	// body is sent.
	Render bool
}

// ConfigDefault is the default config.
var ConfigDefault = Config{
	Except: []string{"/checkalive", "/metrics"},
}

// New creates the maintenance middleware.
func New(cfg Config) fiber.Handler {
	if cfg.Driver == nil {
		panic("maintenance: driver is nil")
	}

	if cfg.Except == nil {
		cfg.Except = ConfigDefault.Except
	}

	return func(c fiber.Ctx) error {
		path := strings.ToLower(c.Path())
		for _, prefix := range cfg.Except {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		state, err := cfg.Driver.Active()
		if err != nil {
			// an unreadable flag must not take the site down
			log.Error().Err(err).Msg("maintenance state unavailable")

			return c.Next()
		}

		if state == nil {
			return c.Next()
		}

		if state.Retry > 0 {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(state.Retry))
		}

		c.Status(fiber.StatusServiceUnavailable)

		if cfg.Render {
			return c.Render(TemplateName, fiber.Map{
				"Message": state.Message,
				"Since":   state.Since,
			})
		}

		return c.SendString("Service Unavailable")
	}
}
