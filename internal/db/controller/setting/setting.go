// Package setting reads and writes the runtime settings table.
package setting

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gestock/gestock/internal/db/models"
)

const (
	nameQueryPattern   = "name = ?"
	prefixQueryPattern = "name LIKE ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when a setting name is empty.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var s models.Setting

	if err := db.Where(nameQueryPattern, name).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, err
	}

	return &s, nil
}

// List returns the settings whose name starts with prefix, ordered by name.
// An empty prefix lists everything.
func List(db *gorm.DB, prefix string) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	settings := []models.Setting{}
	query := db.Order("name")

	if prefix != "" {
		query = query.Where(prefixQueryPattern, prefix+"%")
	}

	if err := query.Find(&settings).Error; err != nil {
		return nil, err
	}

	// LIKE treats % and _ as wildcards
	return slices.DeleteFunc(settings, func(s models.Setting) bool {
		return !strings.HasPrefix(s.Name, prefix)
	}), nil
}

// Set creates or replaces the value of a setting.
func Set(db *gorm.DB, name string, value []byte) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	s := models.Setting{Name: name, Value: value}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&s).Error
	if err != nil {
		return nil, err
	}

	// the id reported by an upsert is not reliable across engines
	return Get(db, name)
}

// Delete removes a setting by name.
func Delete(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}

	if name == "" {
		return ErrSettingNameEmpty
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

// Bool reads a boolean setting. found is false when the setting does not
// exist or its value is not a boolean.
func Bool(db *gorm.DB, name string) (value, found bool, err error) {
	s, err := Get(db, name)
	if errors.Is(err, ErrSettingNotFound) {
		return false, false, nil
	}

	if err != nil {
		return false, false, err
	}

	b, castErr := cast.ToBoolE(string(s.Value))
	if castErr != nil {
		return false, false, nil
	}

	return b, true, nil
}

// SetBool stores a boolean setting as "true" or "false".
func SetBool(db *gorm.DB, name string, value bool) error {
	_, err := Set(db, name, []byte(strconv.FormatBool(value)))

	return err
}
