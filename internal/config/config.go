// Package config handles the application table: etc/main.toml, .env and environment overrides.
package config

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// JSONOverrideEnv holds a JSON document merged over the loaded config.
	JSONOverrideEnv = "GESTOCK_CONFIG_JSON"

	redacted = "********"
)

// ReadConfig from config directory.
// Literal defaults are overlaid by <path>/main.toml (optional), then by the
// environment (a .env file in the working directory is loaded first) and
// finally by the JSON document in GESTOCK_CONFIG_JSON.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		err error
	)

	if path == "" {
		path = "./etc/"
	}

	if err = loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	mainFile := filepath.Join(path, "main.toml")
	if _, err = os.Stat(mainFile); err == nil {
		v.SetConfigFile(mainFile)

		if err = v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	applyEnv(&c, NewEnv())

	// override it from env
	if JSONConfigEnv := os.Getenv(JSONOverrideEnv); JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func loadDotEnv(file string) error {
	err := godotenv.Load(file)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return errors.Wrap(err, "failed to load "+file)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+JSONOverrideEnv)
	}

	return c, nil
}

// Location returns the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, errors.Wrap(err, "invalid app.timezone")
	}

	return loc, nil
}

// Apply installs process wide settings derived from the config.
// Currently this sets time.Local to the configured timezone.
func (c *Config) Apply() error {
	loc, err := c.Location()
	if err != nil {
		return err
	}

	time.Local = loc //nolint:reassign

	return nil
}

// Redacted returns a copy of c with secrets masked.
func (c *Config) Redacted() Config {
	out := *c

	if out.App.Key != "" {
		out.App.Key = redacted
	}

	if out.DB.Password != "" {
		out.DB.Password = redacted
	}

	return out
}

// DumpConfig config as TOML String. Secrets are masked.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	r := c.Redacted()
	if err := toml.NewEncoder(&buffer).Encode(r); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String. Secrets are masked.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c.Redacted()); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate the config settings the service can not start without.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.App.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	return validateStruct(c)
}
