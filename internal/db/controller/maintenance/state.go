// Package maintenance persists the maintenance state in the settings table.
package maintenance

import (
	"errors"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/gestock/gestock/internal/db/controller/setting"
)

const (
	// SettingKeyMaintenance is the key used to store the maintenance state in the database.
	SettingKeyMaintenance = "maintenance.down"
)

type (
	// State describes a running maintenance window.
	State struct {
		Since   time.Time `json:"time"`
		Message string    `json:"message,omitempty"`
		Retry   int       `json:"retry,omitempty"` // seconds, sent as Retry-After
	}
)

// Load reads the state. The returned bool is false when the application is up.
func (m *State) Load(db *gorm.DB) (bool, error) {
	s, err := setting.Get(db, SettingKeyMaintenance)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	// a broken payload still means down
	_ = json.Unmarshal(s.Value, m)

	return true, nil
}

// Save marks the application as down with this state.
func (m *State) Save(db *gorm.DB) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	_, err = setting.Set(db, SettingKeyMaintenance, data)

	return err
}

// Clear brings the application back up. Clearing an absent state is not an error.
func Clear(db *gorm.DB) error {
	err := setting.Delete(db, SettingKeyMaintenance)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return nil
	}

	return err
}
