package maintenance_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestock/gestock/internal/maintenance"
	middleware "github.com/gestock/gestock/internal/web/middleware/maintenance"
)

type fakeDriver struct {
	state *maintenance.State
	err   error
}

func (f *fakeDriver) Active() (*maintenance.State, error) { return f.state, f.err }

func (f *fakeDriver) Down(s maintenance.State) error {
	f.state = &s

	return nil
}

func (f *fakeDriver) Up() error {
	f.state = nil

	return nil
}

func newApp(d maintenance.Driver) *fiber.App {
	app := fiber.New()
	app.Use(middleware.New(middleware.Config{Driver: d}))

	for _, path := range []string{"/", "/checkalive", "/metrics"} {
		app.Get(path, func(c fiber.Ctx) error { return c.SendString("ok") })
	}

	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, string, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body), resp.Header.Get(fiber.HeaderRetryAfter)
}

func TestUp(t *testing.T) {
	status, body, _ := get(t, newApp(&fakeDriver{}), "/")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestDown(t *testing.T) {
	d := &fakeDriver{}
	require.NoError(t, d.Down(maintenance.NewState("inventory", 120)))

	app := newApp(d)

	status, body, retry := get(t, app, "/")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "Service Unavailable", body)
	assert.Equal(t, "120", retry)

	for _, path := range []string{"/checkalive", "/metrics"} {
		status, _, _ = get(t, app, path)
		assert.Equal(t, fiber.StatusOK, status, path)
	}

	require.NoError(t, d.Up())

	status, _, _ = get(t, app, "/")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestDriverErrorKeepsServing(t *testing.T) {
	status, _, _ := get(t, newApp(&fakeDriver{err: errors.New("disk gone")}), "/")

	assert.Equal(t, fiber.StatusOK, status)
}

func TestNilDriverPanics(t *testing.T) {
	assert.Panics(t, func() { middleware.New(middleware.Config{}) })
}
