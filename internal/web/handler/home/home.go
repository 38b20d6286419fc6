// Package home serves the landing page and the display preferences.
package home

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/gestock/gestock/internal/config"
	"github.com/gestock/gestock/internal/feature"
	"github.com/gestock/gestock/internal/format"
	"github.com/gestock/gestock/internal/input"
	"github.com/gestock/gestock/internal/web/handler"
)

const (
	// Path is the path of the landing page.
	Path = handler.RootPath

	// PreferencesPath receives the preferences form.
	PreferencesPath = handler.RootPath + "preferences"

	// TemplateName is the name of the landing page template.
	TemplateName = "home/index"

	// SessionKeyCurrency holds the display currency of the session.
	SessionKeyCurrency = "currency"

	samplePrice = 1234.5
)

// Feature is a row of the feature table.
type Feature struct {
	Name    string
	Enabled bool
}

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	features *feature.Service
	sessions *session.Store
}

// Handler is the home handler.
var Handler = Service{}

// Init registers the routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) error {
	if app == nil || cfg == nil || deps.Features == nil || deps.Sessions == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.features = deps.Features
	s.sessions = deps.Sessions

	app.Get(Path, s.Get)
	app.Post(PreferencesPath, s.Post)

	return nil
}

// Get renders the landing page.
func (s *Service) Get(c fiber.Ctx) error {
	all, err := s.features.All()
	if err != nil {
		log.Warn().Err(err).Msg("feature overrides unavailable")

		all = s.cfg.App.Features
	}

	rows := make([]Feature, 0, len(all))
	for _, name := range s.features.Names() {
		rows = append(rows, Feature{Name: name, Enabled: all[name]})
	}

	sess, err := s.sessions.Get(c)
	if err != nil {
		return errors.Wrap(err, "load session")
	}
	defer sess.Release()

	currency, _ := sess.Get(SessionKeyCurrency).(string)
	if currency == "" {
		currency = format.DefaultCurrency
	}

	return c.Render(TemplateName, handler.Layout(c, s.cfg, "Home", fiber.Map{
		"Features":    rows,
		"Currency":    currency,
		"Currencies":  format.CurrencyCodes(),
		"SamplePrice": samplePrice,
	}), handler.BaseLayout)
}

// Post stores the display currency and sends the browser back home.
func (s *Service) Post(c fiber.Ctx) error {
	currency := strings.ToUpper(input.Sanitize(c.FormValue(SessionKeyCurrency)))
	if !slices.Contains(format.CurrencyCodes(), currency) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown currency")
	}

	sess, err := s.sessions.Get(c)
	if err != nil {
		return errors.Wrap(err, "load session")
	}
	defer sess.Release()

	sess.Set(SessionKeyCurrency, currency)

	if err = sess.Save(); err != nil {
		return errors.Wrap(err, "save session")
	}

	return handler.Redirect(Path, fiber.StatusSeeOther)
}
