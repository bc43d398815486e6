package server

// DefaultAddress is the address the administration API listens on when
// none is configured.
const DefaultAddress = ":8080"

// Version is reported by the liveness endpoint.
const Version = "1.0.0"

// maxDetailedSubjects caps how many subjects the listing endpoint
// describes in detail per request.
const maxDetailedSubjects = 100

// Config defines the configuration for the administration server.
type Config struct {
	// Address is the host:port the server listens on.
	// Defaults to DefaultAddress.
	Address string `yaml:"address" envconfig:"SERVER_ADDRESS"`

	// Username and Password protect the /api routes with HTTP basic
	// auth. When both are empty, authentication is disabled; intended
	// for local use only. The password is held in memory only and is
	// never persisted or logged.
	Username string `yaml:"username" envconfig:"SERVER_USERNAME"`
	Password string `yaml:"password" envconfig:"SERVER_PASSWORD"`
}

// Logger is the logging interface the server reports through.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
