package config

// Supported database engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string `validate:"oneof=mysql postgres sqlite"`
	Extras   string // additional DSN parameters, "key=value&key2=value2"
	Host     string
	Port     int
	User     string
	Password string
	Name     string `validate:"required"`
	Charset  string
}
