package registry

import "time"

// Config holds configuration for the schema registry client.
type Config struct {
	// URL is the schema registry endpoint (e.g., "https://psrc-xxxxx.eu-central-1.aws.confluent.cloud")
	URL string `yaml:"url" envconfig:"SCHEMA_REGISTRY_URL"`

	// APIKey for basic auth (optional; leave empty for anonymous registries)
	APIKey string `yaml:"api_key" envconfig:"SCHEMA_REGISTRY_API_KEY"`

	// APISecret for basic auth. Held in memory only; the client never
	// logs it and never includes it in errors.
	APISecret string `yaml:"api_secret" envconfig:"SCHEMA_REGISTRY_API_SECRET"`

	// Timeout for each HTTP request. The client performs no retries;
	// a request either completes within this window or fails.
	// Default: DefaultTimeout
	Timeout time.Duration `yaml:"timeout" envconfig:"SCHEMA_REGISTRY_TIMEOUT"`
}

// Default values for configuration
const (
	DefaultTimeout = 10 * time.Second
)
