// Package feature resolves feature toggles: the static table from the
// configuration, overridden at runtime by "feature.<name>" settings.
package feature

import (
	"maps"
	"slices"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/gestock/gestock/internal/config"
	"github.com/gestock/gestock/internal/db/controller/setting"
)

// SettingPrefix prefixes the settings that override a feature.
const SettingPrefix = "feature."

// Well known features.
const (
	Authentication = "authentication"
	Authorization  = "authorization"
	Caching        = "caching"
	Logging        = "logging"
	Notifications  = "notifications"
)

// ErrUnknownFeature is returned when switching a feature that is not in the table.
var ErrUnknownFeature = errors.New("unknown feature")

// Service answers feature questions.
type Service struct {
	db       *gorm.DB
	defaults config.Features
}

// New returns a Service over the static table defaults. db may be nil, then
// only the static table is used.
func New(db *gorm.DB, defaults config.Features) *Service {
	return &Service{db: db, defaults: maps.Clone(defaults)}
}

// Enabled reports whether name is switched on. Unknown features are off.
// A failing settings lookup falls back to the static table.
func (s *Service) Enabled(name string) bool {
	def, known := s.defaults[name]
	if !known {
		return false
	}

	if s.db == nil {
		return def
	}

	value, found, err := setting.Bool(s.db, SettingPrefix+name)
	if err != nil {
		log.Warn().Err(err).Str("feature", name).Msg("feature override lookup failed, using static value")

		return def
	}

	if found {
		return value
	}

	return def
}

// Set stores a runtime override for a known feature.
func (s *Service) Set(name string, on bool) error {
	if _, known := s.defaults[name]; !known {
		return errors.Wrap(ErrUnknownFeature, name)
	}

	if s.db == nil {
		return setting.ErrDBNil
	}

	return errors.Wrapf(setting.SetBool(s.db, SettingPrefix+name, on), "set feature %s", name)
}

// All returns the effective state of every known feature.
func (s *Service) All() (config.Features, error) {
	out := maps.Clone(s.defaults)
	if out == nil {
		out = config.Features{}
	}

	if s.db == nil {
		return out, nil
	}

	overrides, err := setting.List(s.db, SettingPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "list feature overrides")
	}

	for _, o := range overrides {
		name := o.Name[len(SettingPrefix):]
		if _, known := out[name]; !known {
			continue
		}

		if value, err := cast.ToBoolE(string(o.Value)); err == nil {
			out[name] = value
		}
	}

	return out, nil
}

// Names returns the known feature names in order.
func (s *Service) Names() []string {
	return slices.Sorted(maps.Keys(s.defaults))
}
