package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// DefaultServiceName is attached to every log entry when Config.ServiceName is empty.
const DefaultServiceName = "schemawarden"

type Config struct {
	// Level sets the minimum level that is emitted.
	// One of: debug, info, warning, error. Anything else falls back to info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	// Default: DefaultServiceName
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// EnableTracing makes the *WithContext methods extract the active
	// OpenTelemetry span from the context and attach trace_id/span_id fields.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`
}
