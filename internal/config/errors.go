package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config app.url is empty.
	ErrEmptyURL = errors.New("config app.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrInvalidConfig is returned when struct validation of the config fails.
	ErrInvalidConfig = errors.New("invalid config")
)
