package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// RedirectAction ends the request with a redirect. Handlers return it as an
// error so nothing after the return runs; ErrorHandler writes the response.
type RedirectAction struct {
	URL    string
	Status int
}

func (r *RedirectAction) Error() string {
	return "redirect to " + r.URL
}

// StatusCode returns the HTTP status of the redirect.
func (r *RedirectAction) StatusCode() int {
	return r.Status
}

// Redirect returns a terminal redirect to url, 302 Found unless a status is
// given.
//
//	if !loggedIn {
//		return handler.Redirect("/login")
//	}
func Redirect(url string, status ...int) error {
	code := fiber.StatusFound
	if len(status) > 0 && status[0] >= 300 && status[0] < 400 {
		code = status[0]
	}

	return &RedirectAction{URL: url, Status: code}
}

// ErrorHandler answers redirects and fiber errors, everything else is a 500.
func ErrorHandler(c fiber.Ctx, err error) error {
	var redirect *RedirectAction
	if errors.As(err, &redirect) {
		return c.Redirect().Status(redirect.Status).To(redirect.URL)
	}

	code := fiber.StatusInternalServerError
	message := fiber.ErrInternalServerError.Message

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.Status(code).SendString(message)
}
