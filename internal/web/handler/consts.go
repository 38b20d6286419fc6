package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// CSRFLocal is the fiber.Locals key holding the session csrf token.
	CSRFLocal = "csrf"

	// ErrNilACDFatalLogMsg is used if app, cfg or a dependency is nil.
	ErrNilACDFatalLogMsg = "app, cfg or a dependency is nil"
)
