package tracer

// DefaultServiceName identifies this service in exported traces when
// no name is configured.
const DefaultServiceName = "schemawarden"

// Config defines the configuration for the tracer.
type Config struct {
	// ServiceName identifies this service in exported traces.
	// Defaults to DefaultServiceName.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is recorded as the deployment environment attribute,
	// e.g. "production" or "staging".
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport turns on the OTLP/HTTP exporter. The collector
	// endpoint is taken from the standard OTEL_EXPORTER_OTLP_ENDPOINT
	// environment variable. When false, spans are created but never
	// exported.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}

// Logger is the logging interface the tracer reports through.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}
