package health

// Config holds configuration for the health auditor.
type Config struct {
	// Endpoint is the registry URL shown in reports. Display only;
	// the actual connection lives in the registry client.
	Endpoint string `yaml:"endpoint" envconfig:"HEALTH_ENDPOINT"`

	// LargeSchemaSample bounds how many subjects the large_schemas check
	// inspects. Sampling keeps audit latency flat on big registries;
	// the check reports its actual coverage.
	// Default: DefaultLargeSchemaSample
	LargeSchemaSample int `yaml:"large_schema_sample" envconfig:"HEALTH_LARGE_SCHEMA_SAMPLE"`

	// CompatibilitySample bounds how many per-subject compatibility
	// configs the compatibility check fetches.
	// Default: DefaultCompatibilitySample
	CompatibilitySample int `yaml:"compatibility_sample" envconfig:"HEALTH_COMPATIBILITY_SAMPLE"`

	// ReferenceSample bounds how many subjects the orphaned_refs check
	// scans for broken references.
	// Default: DefaultReferenceSample
	ReferenceSample int `yaml:"reference_sample" envconfig:"HEALTH_REFERENCE_SAMPLE"`

	// Logger is an optional logger; skipped subjects and failed checks
	// are reported through it. Nil disables logging.
	Logger Logger
}

// Logger is an interface that matches the v1/logger methods the auditor uses.
type Logger interface {
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultLargeSchemaSample   = 100
	DefaultCompatibilitySample = 50
	DefaultReferenceSample     = 50

	// Version count thresholds for the version_explosion check.
	versionWarningThreshold  = 50
	versionCriticalThreshold = 100

	// Subject count thresholds for the subject_count check.
	subjectWarningThreshold  = 1000
	subjectCriticalThreshold = 5000

	// Latest-schema size threshold in KiB for the large_schemas check.
	largeSchemaKBThreshold = 100
)
