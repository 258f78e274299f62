package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultURL         = "https://sistemas.fef.unicamp.br/extensao/registrations/showOpenRegistrations/26"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultEnvFile     = ".env"

	DefaultDBHost    = "localhost"
	DefaultDBPort    = 5432
	DefaultDBName    = "fef_activities"
	DefaultDBUser    = "postgres"
	DefaultDBSSLMode = "disable"
)

// Environment variables read by Load
const (
	EnvLogLevel   = "ACTIVITIES_LOG_LEVEL"
	EnvURL        = "ACTIVITIES_URL"
	EnvUserAgent  = "ACTIVITIES_USER_AGENT"
	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvDBName     = "DB_NAME"
	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvDBSSLMode  = "DB_SSLMODE"
)
