// Package maintenance switches the application in and out of maintenance mode.
package maintenance

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/gestock/gestock/internal/config"
	"github.com/gestock/gestock/internal/db/controller/maintenance"
)

// Driver names accepted in app.maintenance.driver.
const (
	DriverFile     = "file"
	DriverDatabase = "database"
)

// ErrUnknownDriver is returned by New for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown maintenance driver")

// State is the payload of a maintenance window.
type State = maintenance.State

// Driver stores the maintenance flag.
type Driver interface {
	// Active returns the current state, or nil when the application is up.
	Active() (*State, error)
	Down(state State) error
	Up() error
}

// New returns the driver selected by the configuration.
func New(cfg *config.Config, db *gorm.DB) (Driver, error) {
	switch cfg.App.Maintenance.Driver {
	case DriverFile, "":
		return &FileDriver{Path: cfg.App.Maintenance.File}, nil
	case DriverDatabase:
		if db == nil {
			return nil, errors.New("maintenance database driver needs a database")
		}

		return &DatabaseDriver{DB: db}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownDriver, "%q", cfg.App.Maintenance.Driver)
	}
}

// NewState returns a state starting now.
func NewState(message string, retry int) State {
	return State{Since: time.Now().UTC().Truncate(time.Second), Message: message, Retry: retry}
}

// FileDriver keeps the state in a marker file. The file exists while down.
type FileDriver struct {
	Path string
}

// Active implements Driver.
func (d *FileDriver) Active() (*State, error) {
	data, err := os.ReadFile(d.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, errors.Wrap(err, "read maintenance file")
	}

	var state State
	// a hand made marker without payload still means down
	_ = json.Unmarshal(data, &state)

	return &state, nil
}

// Down implements Driver.
func (d *FileDriver) Down(state State) error {
	if err := os.MkdirAll(filepath.Dir(d.Path), 0o750); err != nil { //nolint:mnd
		return errors.Wrap(err, "create maintenance directory")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "encode maintenance state")
	}

	return errors.Wrap(os.WriteFile(d.Path, data, 0o640), "write maintenance file") //nolint:mnd
}

// Up implements Driver.
func (d *FileDriver) Up() error {
	err := os.Remove(d.Path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return errors.Wrap(err, "remove maintenance file")
}

// DatabaseDriver keeps the state in the settings table.
type DatabaseDriver struct {
	DB *gorm.DB
}

// Active implements Driver.
func (d *DatabaseDriver) Active() (*State, error) {
	var state State

	down, err := state.Load(d.DB)
	if err != nil {
		return nil, errors.Wrap(err, "load maintenance state")
	}

	if !down {
		return nil, nil //nolint:nilnil
	}

	return &state, nil
}

// Down implements Driver.
func (d *DatabaseDriver) Down(state State) error {
	return errors.Wrap(state.Save(d.DB), "save maintenance state")
}

// Up implements Driver.
func (d *DatabaseDriver) Up() error {
	return errors.Wrap(maintenance.Clear(d.DB), "clear maintenance state")
}
