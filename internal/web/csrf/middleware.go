package csrf

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/pkg/errors"
)

// Config implements the fiber middleware settings.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c fiber.Ctx) bool

	// Store loads the session of the request.
	//
	// Required.
	Store *session.Store

	// Manager issues and verifies tokens.
	//
	// Optional. Default: package manager
	Manager *Manager

	// FormField carries the token in form posts.
	//
	// Optional. Default: "_token"
	FormField string

	// Header carries the token in scripted requests.
	//
	// Optional. Default: "X-CSRF-Token"
	Header string

	// ContextKey is the fiber.Locals key the token is published under.
	//
	// Optional. Default: "csrf"
	ContextKey string
}

// ConfigDefault is the default config.
var ConfigDefault = Config{
	FormField:  "_token",
	Header:     "X-CSRF-Token",
	ContextKey: "csrf",
}

// ErrTokenMismatch is returned, as a 403, when an unsafe request carries no
// valid token.
var ErrTokenMismatch = fiber.NewError(fiber.StatusForbidden, "CSRF token mismatch")

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.Manager == nil {
		cfg.Manager = defaultManager
	}

	if cfg.FormField == "" {
		cfg.FormField = ConfigDefault.FormField
	}

	if cfg.Header == "" {
		cfg.Header = ConfigDefault.Header
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = ConfigDefault.ContextKey
	}

	return cfg
}

// New creates the csrf middleware. Every request gets the session token in
// Locals; POST, PUT, PATCH and DELETE must send it back.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	if cfg.Store == nil {
		panic("csrf: session store is nil")
	}

	iss := &issuer{store: cfg.Store, manager: cfg.Manager, locks: newKeyedMutex()}

	return func(c fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		sess, err := cfg.Store.Get(c)
		if err != nil {
			return errors.Wrap(err, "load session")
		}
		defer sess.Release()

		// a token presented before this request had a session can not match
		if !isSafe(c.Method()) && !cfg.Manager.Verify(sess, presented(c, cfg)) {
			return ErrTokenMismatch
		}

		token, err := iss.token(c, sess)
		if err != nil {
			return err
		}

		c.Locals(cfg.ContextKey, token)

		return c.Next()
	}
}

// issuer creates session tokens at most once per stored session, also when
// concurrent requests each loaded their own copy of the session.
// The lock is process local: replicas sharing a session storage can still
// race on the very first request of a session.
type issuer struct {
	store   *session.Store
	manager *Manager
	locks   *keyedMutex
}

// token returns the token of sess, creating and saving it when neither sess
// nor the stored session carries one yet.
func (i *issuer) token(c fiber.Ctx, sess *session.Session) (string, error) {
	if token := Token(sess); token != "" {
		return token, nil
	}

	unlock := i.locks.Lock(sess.ID())
	defer unlock()

	// another request may have stored a token since sess was loaded
	stored, err := i.stored(c.Context(), sess.ID())
	if err != nil {
		return "", err
	}

	if stored != "" {
		sess.Set(SessionKey, stored)

		return stored, nil
	}

	token, created, err := i.manager.issue(sess)
	if err != nil {
		return "", err
	}

	if created {
		if err = sess.Save(); err != nil {
			return "", errors.Wrap(err, "save session")
		}
	}

	return token, nil
}

// stored reads the token of session id straight from the storage. A session
// that was never saved has none.
func (i *issuer) stored(ctx context.Context, id string) (string, error) {
	sess, err := i.store.GetByID(ctx, id)
	if errors.Is(err, session.ErrSessionIDNotFoundInStore) {
		return "", nil
	}

	if err != nil {
		return "", errors.Wrap(err, "reload session")
	}
	defer sess.Release()

	return Token(sess), nil
}

func presented(c fiber.Ctx, cfg Config) string {
	if token := c.FormValue(cfg.FormField); token != "" {
		return token
	}

	return c.Get(cfg.Header)
}

func isSafe(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions, fiber.MethodTrace:
		return true
	default:
		return false
	}
}
