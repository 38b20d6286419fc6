package db

import "github.com/pkg/errors"

var (
	// ErrConnect marks every failure to reach the database at startup.
	ErrConnect = errors.New("database connection failed")

	// ErrUnsupportedEngine is returned for an engine without a gorm dialector.
	ErrUnsupportedEngine = errors.New("unsupported database engine")
)

// ConnectError carries the driver error behind ErrConnect.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return ErrConnect.Error() + ": " + e.Err.Error()
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrConnect) match.
func (e *ConnectError) Is(target error) bool {
	return target == ErrConnect //nolint:errorlint
}
