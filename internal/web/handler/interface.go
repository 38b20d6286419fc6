// Package handler holds what the page handlers share: the registration
// contract, the layout data and the terminal redirect.
package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"github.com/gestock/gestock/internal/config"
	"github.com/gestock/gestock/internal/feature"
)

// Deps are the collaborators handed to every handler at construction.
type Deps struct {
	Features *feature.Service
	Sessions *session.Store
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, deps Deps) error
}

// Layout returns the values the base layout renders, merged with data.
func Layout(c fiber.Ctx, cfg *config.Config, title string, data fiber.Map) fiber.Map {
	token, _ := c.Locals(CSRFLocal).(string)

	out := fiber.Map{
		"AppName": cfg.App.Name,
		"Version": cfg.App.Version,
		"Env":     cfg.App.Env,
		"Debug":   cfg.App.Debug,
		"Locale":  cfg.App.Locale,
		"Title":   title,
		"CSRF":    token,
		"Now":     time.Now(),
	}

	for k, v := range data {
		out[k] = v
	}

	return out
}
