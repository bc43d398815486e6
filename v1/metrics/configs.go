package metrics

// Default configuration values.
const (
	// DefaultMetricsAddress is the listen address used when none is
	// configured.
	DefaultMetricsAddress = ":9090"

	// DefaultServiceName labels every metric when no service name is
	// configured.
	DefaultServiceName = "schemawarden"
)

// Config defines the configuration for the Prometheus metrics server.
type Config struct {
	// Address is the network address the metrics HTTP server listens
	// on, e.g. ":9090" or "127.0.0.1:9100". Defaults to
	// DefaultMetricsAddress.
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// EnableDefaultCollectors controls whether the built-in Go
	// runtime, process and build info collectors are registered.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// ServiceName is added as a constant service label to every
	// metric. Defaults to DefaultServiceName.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}
